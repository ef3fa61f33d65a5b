package bq

var (
	SanitizeProtoJSONForTest = sanitizeProtoJSON
	ProtoFieldNameForTest    = protoFieldName
	EncodeRowForTest         = encodeRow
	NewDescriptorForTest     = newDescriptor
)

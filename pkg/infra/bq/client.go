// Package bq appends observer snapshots to BigQuery through the storage write API.
package bq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/apiv1/storagepb"
	"cloud.google.com/go/bigquery/storage/managedwriter"
	"cloud.google.com/go/bigquery/storage/managedwriter/adapt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/safe"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Client manages one table: its metadata through the BigQuery API and rows through a managed
// stream.
type Client struct {
	bqClient *bigquery.Client
	mwClient *managedwriter.Client
	project  types.GoogleProjectID
	dataset  types.BQDatasetID
	table    types.BQTableID
}

var _ interfaces.BigQuery = (*Client)(nil)

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, options ...option.ClientOption) (*Client, error) {
	mwClient, err := managedwriter.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create managed writer client", goerr.V("projectID", projectID))
	}

	bqClient, err := bigquery.NewClient(ctx, projectID.String(), options...)
	if err != nil {
		_ = mwClient.Close()
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient: bqClient,
		mwClient: mwClient,
		project:  projectID,
		dataset:  datasetID,
		table:    tableID,
	}, nil
}

func (x *Client) Close() error {
	safe.Close(x.mwClient)
	return x.bqClient.Close()
}

func (x *Client) tableRef() *bigquery.Table {
	return x.bqClient.Dataset(x.dataset.String()).Table(x.table.String())
}

func (x *Client) errValues() []goerr.Option {
	return []goerr.Option{goerr.V("dataset", x.dataset), goerr.V("table", x.table)}
}

// CreateTable implements interfaces.BigQuery.
func (x *Client) CreateTable(ctx context.Context, md *bigquery.TableMetadata) error {
	if err := x.tableRef().Create(ctx, md); err != nil {
		return goerr.Wrap(err, "failed to create table", x.errValues()...)
	}
	return nil
}

// GetMetadata implements interfaces.BigQuery. If the table does not exist, it returns nil.
func (x *Client) GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error) {
	md, err := x.tableRef().Metadata(ctx)
	if err != nil {
		if gErr, ok := err.(*googleapi.Error); ok && gErr.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get table metadata", x.errValues()...)
	}
	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *Client) UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.tableRef().Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(err, "failed to update table", append(x.errValues(), goerr.V("meta", md))...)
	}
	return nil
}

// Insert implements interfaces.BigQuery. data is encoded to JSON and then to a proto message
// that follows schema.
func (x *Client) Insert(ctx context.Context, schema bigquery.Schema, data any) error {
	messageDescriptor, descriptorProto, err := newDescriptor(schema)
	if err != nil {
		return err
	}

	row, err := encodeRow(messageDescriptor, data)
	if err != nil {
		return err
	}

	return x.appendRows(ctx, descriptorProto, [][]byte{row})
}

func newDescriptor(schema bigquery.Schema) (protoreflect.MessageDescriptor, *descriptorpb.DescriptorProto, error) {
	storageSchema, err := adapt.BQSchemaToStorageTableSchema(schema)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema")
	}

	descriptor, err := adapt.StorageSchemaToProto2Descriptor(storageSchema, "root")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema to descriptor")
	}
	messageDescriptor, ok := descriptor.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, nil, goerr.New("adapted descriptor is not a message descriptor")
	}

	descriptorProto, err := adapt.NormalizeDescriptor(messageDescriptor)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to normalize descriptor")
	}
	return messageDescriptor, descriptorProto, nil
}

func encodeRow(md protoreflect.MessageDescriptor, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal row", goerr.V("data", data))
	}
	sanitized, err := sanitizeProtoJSON(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sanitize row", goerr.V("raw", string(raw)))
	}

	message := dynamicpb.NewMessage(md)
	if err := protojson.Unmarshal(sanitized, message); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal row into proto message", goerr.V("raw", string(raw)))
	}

	b, err := proto.Marshal(message)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal proto message")
	}
	return b, nil
}

func (x *Client) appendRows(ctx context.Context, descriptorProto *descriptorpb.DescriptorProto, rows [][]byte) error {
	ms, err := x.mwClient.NewManagedStream(ctx,
		managedwriter.WithDestinationTable(
			managedwriter.TableParentFromParts(x.project.String(), x.dataset.String(), x.table.String()),
		),
		managedwriter.WithType(managedwriter.DefaultStream),
		managedwriter.WithSchemaDescriptor(descriptorProto),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create managed stream", x.errValues()...)
	}
	defer safe.Close(ms)

	result, err := ms.AppendRows(ctx, rows)
	if err != nil {
		return goerr.Wrap(err, "failed to append rows", x.errValues()...)
	}

	resp, err := result.FullResponse(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to get append result", x.errValues()...)
	}
	if rowErrs := resp.GetRowErrors(); len(rowErrs) > 0 {
		return goerr.New("rows were rejected", append(x.errValues(), goerr.V("errors", rowErrorMessages(rowErrs)))...)
	}
	return nil
}

func rowErrorMessages(errs []*storagepb.RowError) []string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.GetMessage()
	}
	return msgs
}

// sanitizeProtoJSON renames keys that are not valid proto field names in the same way the
// adapter names their columns.
func sanitizeProtoJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return json.Marshal(sanitizeValue(data))
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(val))
		for key, value := range val {
			res[protoFieldName(key)] = sanitizeValue(value)
		}
		return res
	case []any:
		for i := range val {
			val[i] = sanitizeValue(val[i])
		}
		return val
	default:
		return v
	}
}

func protoFieldName(name string) string {
	if protoreflect.Name(name).IsValid() {
		return name
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(name))
	encoded = strings.NewReplacer("+", "_", "/", "_", "=", "").Replace(encoded)
	return "col_" + encoded
}

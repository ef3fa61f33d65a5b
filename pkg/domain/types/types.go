package types

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

type (
	RepositoryID   int64
	RepositoryPath string
	BatchImportID  string
	JobID          string
	RequestID      string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

func (x RepositoryID) String() string {
	return strconv.FormatInt(int64(x), 10)
}

func (x RepositoryPath) String() string { return string(x) }
func (x BatchImportID) String() string  { return string(x) }
func (x JobID) String() string          { return string(x) }

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func NewBatchImportID() BatchImportID {
	return BatchImportID(uuid.NewString())
}

func NewJobID() JobID {
	return JobID(uuid.NewString())
}

// RegistryToken is a bearer token to call the registry import API.
type RegistryToken string

func (x RegistryToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x RegistryToken) String() string {
	return "***********"
}

// NotificationSecret is a shared secret the registry presents when it notifies migration status.
type NotificationSecret string

func (x NotificationSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x NotificationSecret) String() string {
	return "***********"
}

type DatabaseURL string

func (x DatabaseURL) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x DatabaseURL) String() string {
	return "***********"
}

package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra/bq"
	"github.com/urfave/cli/v3"
)

// BigQuery configures the table that observer snapshots are appended to. It is optional.
type BigQuery struct {
	projectID string
	datasetID string
	tableID   string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID",
			Category:    "BigQuery",
			Destination: &x.projectID,
			Sources:     cli.EnvVars("REGMIG_BIGQUERY_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Destination: &x.datasetID,
			Sources:     cli.EnvVars("REGMIG_BIGQUERY_DATASET_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID for repository state snapshots",
			Category:    "BigQuery",
			Destination: &x.tableID,
			Value:       "repository_states",
			Sources:     cli.EnvVars("REGMIG_BIGQUERY_TABLE_ID"),
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != "" || x.datasetID != ""
}

// NewClient returns nil without error when BigQuery is not configured.
func (x *BigQuery) NewClient(ctx context.Context) (*bq.Client, error) {
	if !x.Enabled() {
		return nil, nil
	}
	if x.projectID == "" || x.datasetID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "both bigquery-project-id and bigquery-dataset-id are required",
			goerr.V("projectID", x.projectID),
			goerr.V("datasetID", x.datasetID),
		)
	}

	return bq.New(ctx,
		types.GoogleProjectID(x.projectID),
		types.BQDatasetID(x.datasetID),
		types.BQTableID(x.tableID),
	)
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("projectID", x.projectID),
		slog.String("datasetID", x.datasetID),
		slog.String("tableID", x.tableID),
	)
}

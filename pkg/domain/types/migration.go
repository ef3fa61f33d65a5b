package types

// MigrationState is a step of the repository migration pipeline.
type MigrationState string

const (
	MigrationStateDefault       MigrationState = "default"
	MigrationStatePreImporting  MigrationState = "pre_importing"
	MigrationStatePreImportDone MigrationState = "pre_import_done"
	MigrationStateImporting     MigrationState = "importing"
	MigrationStateImportDone    MigrationState = "import_done"
	MigrationStateImportAborted MigrationState = "import_aborted"
	MigrationStateImportSkipped MigrationState = "import_skipped"
)

// MigrationStates is every state in pipeline order.
var MigrationStates = []MigrationState{
	MigrationStateDefault,
	MigrationStatePreImporting,
	MigrationStatePreImportDone,
	MigrationStateImporting,
	MigrationStateImportDone,
	MigrationStateImportAborted,
	MigrationStateImportSkipped,
}

// InFlightMigrationStates consume migration capacity.
var InFlightMigrationStates = []MigrationState{
	MigrationStatePreImporting,
	MigrationStatePreImportDone,
	MigrationStateImporting,
}

// StepDoneMigrationStates mark the end of a pipeline step.
var StepDoneMigrationStates = []MigrationState{
	MigrationStatePreImportDone,
	MigrationStateImportDone,
	MigrationStateImportAborted,
	MigrationStateImportSkipped,
}

func (x MigrationState) String() string { return string(x) }

func (x MigrationState) Valid() bool {
	for _, s := range MigrationStates {
		if s == x {
			return true
		}
	}
	return false
}

// InFlight reports whether the state is counted against capacity.
func (x MigrationState) InFlight() bool {
	return x.in(InFlightMigrationStates)
}

func (x MigrationState) in(states []MigrationState) bool {
	for _, s := range states {
		if s == x {
			return true
		}
	}
	return false
}

// In reports whether the state is one of states.
func (x MigrationState) In(states ...MigrationState) bool {
	return x.in(states)
}

type SkipReason string

const (
	SkipReasonNone                        SkipReason = ""
	SkipReasonNotInPlan                   SkipReason = "not_in_plan"
	SkipReasonTooManyRetries              SkipReason = "too_many_retries"
	SkipReasonTooManyTags                 SkipReason = "too_many_tags"
	SkipReasonRootNamespaceInDenyList     SkipReason = "root_namespace_in_deny_list"
	SkipReasonMigrationCanceled           SkipReason = "migration_canceled"
	SkipReasonNotFound                    SkipReason = "not_found"
	SkipReasonNativeImport                SkipReason = "native_import"
	SkipReasonMigrationForcedCanceled     SkipReason = "migration_forced_canceled"
	SkipReasonMigrationCanceledByRegistry SkipReason = "migration_canceled_by_registry"
)

// ImportType selects the stage requested from the registry.
type ImportType string

const (
	ImportTypePre   ImportType = "pre"
	ImportTypeFinal ImportType = "final"
)

// ImportResponse is the interpreted answer of a start-import call.
type ImportResponse string

const (
	ImportResponseOK                   ImportResponse = "ok"
	ImportResponseAlreadyImported      ImportResponse = "already_imported"
	ImportResponseBadRequest           ImportResponse = "bad_request"
	ImportResponseUnauthorized         ImportResponse = "unauthorized"
	ImportResponseNotFound             ImportResponse = "not_found"
	ImportResponseAlreadyBeingImported ImportResponse = "already_being_imported"
	ImportResponsePreImportFailed      ImportResponse = "pre_import_failed"
	ImportResponseTooManyImports       ImportResponse = "too_many_imports"
	ImportResponseError                ImportResponse = "error"
)

// ExternalImportStatus is the import status reported by the registry.
type ExternalImportStatus string

const (
	ExternalStatusNative              ExternalImportStatus = "native"
	ExternalStatusPreImportInProgress ExternalImportStatus = "pre_import_in_progress"
	ExternalStatusPreImportComplete   ExternalImportStatus = "pre_import_complete"
	ExternalStatusPreImportFailed     ExternalImportStatus = "pre_import_failed"
	ExternalStatusPreImportCanceled   ExternalImportStatus = "pre_import_canceled"
	ExternalStatusImportInProgress    ExternalImportStatus = "import_in_progress"
	ExternalStatusImportComplete      ExternalImportStatus = "import_complete"
	ExternalStatusImportFailed        ExternalImportStatus = "import_failed"
	ExternalStatusImportCanceled      ExternalImportStatus = "import_canceled"
	ExternalStatusError               ExternalImportStatus = "error"
)

type CancelStatus string

const (
	CancelStatusOK         CancelStatus = "ok"
	CancelStatusBadRequest CancelStatus = "bad_request"
	CancelStatusNotFound   CancelStatus = "not_found"
	CancelStatusError      CancelStatus = "error"
)

// NotificationStatus is sent by the registry when a stage ends.
type NotificationStatus string

const (
	NotificationPreImportComplete NotificationStatus = "pre_import_complete"
	NotificationPreImportFailed   NotificationStatus = "pre_import_failed"
	NotificationImportComplete    NotificationStatus = "import_complete"
	NotificationImportFailed      NotificationStatus = "import_failed"
)

type FeatureFlag string

const (
	FeatureDynamicPreImportTimeout FeatureFlag = "dynamic_pre_import_timeout"
)

type WorkerName string

const (
	WorkerEnqueuer     WorkerName = "enqueuer"
	WorkerGuard        WorkerName = "guard"
	WorkerObserver     WorkerName = "observer"
	WorkerStuckImports WorkerName = "stuck-imports"
)

var WorkerNames = []WorkerName{
	WorkerEnqueuer,
	WorkerGuard,
	WorkerObserver,
	WorkerStuckImports,
}

package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Store errors
	StoreUserError
	StoreCollectionError
	StoreFolderError
	StoreItemError
	StoreMetadataError
	StoreGeometryError

	// Download errors
	DownloadRequestError
	DownloadStatusError
	DownloadWriteError
	DownloadRenameError

	// Import errors
	ImportFileOpenError
	ImportReadError
	ImportDestinationError
	ImportCancelledError
)

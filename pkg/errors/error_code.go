package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidThreshold     ErrorCode = 105
	ErrCodeInvalidVersion       ErrorCode = 106
	ErrCodeInvalidWeights       ErrorCode = 107

	// Series errors (200-299)
	ErrCodeColumnNotFound       ErrorCode = 200
	ErrCodeColumnLengthMismatch ErrorCode = 201
	ErrCodeEmptySeries          ErrorCode = 202
	ErrCodeTimestampOrder       ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorUnavailable   ErrorCode = 302

	// Signal errors (400-499)
	ErrCodeSignalColumnMissing ErrorCode = 400
	ErrCodeWeightMismatch      ErrorCode = 401

	// Dataset errors (500-599)
	ErrCodeDatasetUnavailable ErrorCode = 500
	ErrCodeQueryFailed        ErrorCode = 501
	ErrCodeDatasetParseFailed ErrorCode = 502
	ErrCodeDatasetWriteFailed ErrorCode = 503

	// Config errors (600-699)
	ErrCodeConfigReadFailed   ErrorCode = 600
	ErrCodeConfigParseFailed  ErrorCode = 601
	ErrCodeConfigValidation   ErrorCode = 602
	ErrCodeSchemaGeneration   ErrorCode = 603
	ErrCodeVersionMismatch    ErrorCode = 604
	ErrCodeResultsDirRequired ErrorCode = 605
)

package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "unavailable"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Sensor channel errors
	ErrChannelClosed   ErrorCode = "sensor_channel_closed"
	ErrChannelOpen     ErrorCode = "sensor_channel_open_failed"
	ErrKeyNotFound     ErrorCode = "sensor_key_not_found"
	ErrUnsupportedType ErrorCode = "sensor_unsupported_type"
	ErrSentinelReading ErrorCode = "sensor_sentinel_reading"

	// Sampler errors
	ErrSampleFailed    ErrorCode = "sample_failed"
	ErrNoBattery       ErrorCode = "no_battery_present"
	ErrImplausibleRead ErrorCode = "implausible_reading"

	// Preferences errors
	ErrPrefsInit  ErrorCode = "prefs_init_failed"
	ErrPrefsRead  ErrorCode = "prefs_read_failed"
	ErrPrefsWrite ErrorCode = "prefs_write_failed"
	ErrPrefsClose ErrorCode = "prefs_close_failed"

	// Scheduler errors
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrMainLoop        ErrorCode = "main_loop_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrUnavailable:     "Resource unavailable",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInitFailed:      "Initialization failed",
	ErrShutdownFailed:  "Shutdown failed",
	ErrChannelClosed:   "Sensor channel is closed",
	ErrChannelOpen:     "Failed to open sensor channel",
	ErrKeyNotFound:     "Sensor key not found",
	ErrUnsupportedType: "Unsupported sensor value type",
	ErrSentinelReading: "Sensor returned a sentinel reading",
	ErrSampleFailed:    "Failed to collect sample",
	ErrNoBattery:       "No internal battery present",
	ErrImplausibleRead: "Reading outside plausible range",
	ErrPrefsInit:       "Failed to initialize preferences store",
	ErrPrefsRead:       "Failed to read preference",
	ErrPrefsWrite:      "Failed to write preference",
	ErrPrefsClose:      "Failed to close preferences store",
	ErrInvalidInterval: "Invalid interval value",
	ErrMainLoop:        "Error in main loop",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}

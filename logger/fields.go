package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldURL       = "url"
	FieldState     = "state"
	FieldAttempt   = "attempt"
	FieldConnID    = "conn_id"
	FieldEventName = "event_name"
	FieldEventID   = "event_id"
	FieldDelay     = "delay"
	FieldError     = "error"
	FieldClientID  = "client_id"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("connected", logger.Fields("url", url, "attempt", 2))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

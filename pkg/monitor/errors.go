package monitor

type ExceededMaxLatencyError struct{}

func (e ExceededMaxLatencyError) Error() string {
	return "probe: an API call exceeded the maximum allowed latency"
}

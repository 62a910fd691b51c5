package redis

import "fmt"

// valueKey returns the Redis key for a session value
func valueKey(prefix, key string) string {
	return fmt.Sprintf("%s:session:%s", prefix, key)
}

// eventsChannel returns the pub/sub channel announcing session writes
func eventsChannel(prefix string) string {
	return fmt.Sprintf("%s:session:events", prefix)
}

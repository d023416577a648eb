package common

const (
	RedisStreamCycleAnalyzer = "cycle.analyzer"

	RedisStreamGroup    = "analyzer-group"
	RedisStreamConsumer = "analyzer-consumer"
)

package domain

// KeyPrefix namespaces every key the service writes to Redis.
const KeyPrefix = "guide:"

// DefaultCorpusKey holds the JSON corpus when it is loaded from Redis.
const DefaultCorpusKey = KeyPrefix + "corpus"

package config

// PersistAnswersQueue is the Redis list drained by the autosave worker.
const PersistAnswersQueue = "persist_answers_queue"

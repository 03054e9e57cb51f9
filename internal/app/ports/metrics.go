package ports

type CommandMetrics interface {
	RecordAccepted(command string)
	RecordRejected(command, code string)
	RecordFailure()
	RecordTick(completions int64)
}

package libra

const (
	DefaultWorkerThreads  = 25
	DefaultParseCacheSize = 4096
)

var tempfile = "libra-temp-prefixes-*"

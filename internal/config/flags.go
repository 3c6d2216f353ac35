package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d application data directory
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-kdf-memory Argon2id memory cost in KiB
//	-kdf-time Argon2id iteration count
//	-kdf-threads Argon2id parallelism
//	-kdf-key-len derived key length in bytes
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var dataDir string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var kdfMemory uint
	var kdfTime uint
	var kdfThreads uint
	var kdfKeyLen uint

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&dataDir, "d", "", "Application data directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.UintVar(&kdfMemory, "kdf-memory", 0, "Argon2id memory cost in KiB")
	flag.UintVar(&kdfTime, "kdf-time", 0, "Argon2id iteration count")
	flag.UintVar(&kdfThreads, "kdf-threads", 0, "Argon2id parallelism")
	flag.UintVar(&kdfKeyLen, "kdf-key-len", 0, "Derived key length in bytes")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			KDFMemory:  uint32(kdfMemory),
			KDFTime:    uint32(kdfTime),
			KDFThreads: uint8(kdfThreads),
			KDFKeyLen:  uint32(kdfKeyLen),
		},
		Storage: Storage{
			DataDir: dataDir,
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

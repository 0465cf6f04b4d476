package config

import "os"

func IsDebug() bool {
	return os.Getenv("SALESDASH_DEBUG") == "1"
}

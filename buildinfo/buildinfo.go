//go:generate go run ./script/buildinfo-extractor.go .
//
// Generated: 2026-10-17T09:12:44Z
//

package buildinfo

var VERSION_INFO = "dev"
var BUILD_TIME = "2026-10-17T09:12:44Z"

func BuildInfo() string {
	return VERSION_INFO
}

func BuildTime() string {
	return BUILD_TIME
}

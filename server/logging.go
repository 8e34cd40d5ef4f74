package server

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// logFileName is the file under the log directory the server appends to
const logFileName = "kys.log"

// setupLogging points the standard logger at <logDir>/kys.log, mirrored to
// stdout when mirrorStdout is set. The caller closes the returned file.
func setupLogging(logDir string, mirrorStdout bool) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	var out io.Writer = f
	if mirrorStdout {
		out = io.MultiWriter(os.Stdout, f)
	}
	log.SetOutput(out)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return f, nil
}

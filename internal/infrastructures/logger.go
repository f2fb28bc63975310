package infrastructures

import (
	"github.com/sirupsen/logrus"
)

// Logging goes through the package-level logrus logger everywhere; configure
// it once for structured output.
func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

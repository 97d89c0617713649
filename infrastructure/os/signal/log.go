package signal

import (
	"github.com/keypears/keypears/infrastructure/logger"
)

var log = logger.MustGet(logger.SubsystemTags.SGNL)

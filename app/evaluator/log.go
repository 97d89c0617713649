package evaluator

import (
	"github.com/keypears/keypears/infrastructure/logger"
	"github.com/keypears/keypears/util/panics"
)

var log = logger.MustGet(logger.SubsystemTags.EVAL)
var spawn = panics.GoroutineWrapperFunc(log)

package main

import (
	"github.com/keypears/keypears/infrastructure/logger"
	"github.com/keypears/keypears/util/panics"
)

var log = logger.MustGet(logger.SubsystemTags.POW5)
var spawn = panics.GoroutineWrapperFunc(log)

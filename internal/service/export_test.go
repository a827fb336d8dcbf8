package service

// SetClock replaces the clock of a service built by this package.
func SetClock(s any, c Clock) {
	switch svc := s.(type) {
	case *accountService:
		svc.now = c
	case *settingsService:
		svc.now = c
	case *taskService:
		svc.now = c
	case *incomeService:
		svc.now = c
	case *outcomeService:
		svc.now = c
	default:
		panic("service has no clock")
	}
}

var ApplySettingsPatch = applySettingsPatch

package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
)

var (
	endAfterStartTag  = "schedule_end_after_start"
	endAfterStartText = "End time must be after start time"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(scheduleStructValidation, NewSchedule{}, UpdateSchedule{})
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

func scheduleStructValidation(sl validator.StructLevel) {
	switch sch := sl.Current().Interface().(type) {
	case NewSchedule:
		validateTimeRange(sch.StartTime, sch.EndTime, sl)
	case UpdateSchedule:
		validateTimeRange(sch.StartTime, sch.EndTime, sl)
	}
}

// validateTimeRange reports end <= start. Unparsable values are reported by their field tags.
func validateTimeRange(start, end string, sl validator.StructLevel) {
	st, err := core.ParseTime(start)
	if err != nil {
		return
	}
	et, err := core.ParseTime(end)
	if err != nil {
		return
	}
	if !et.After(st) {
		sl.ReportError(end, "end_time", "EndTime", endAfterStartTag, "")
	}
}

package leave

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classdesk/core"
)

var (
	endNotBeforeStartTag  = "leave_end_not_before_start"
	endNotBeforeStartText = "End date must be after or equal to start date"

	reviewStatusTag  = "review_status"
	reviewStatusText = "Status must be one of APPROVED, REJECTED"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(reviewStatusTag, reviewStatusValidation)
	core.RegisterCustomTranslation(validate, translator, reviewStatusTag, reviewStatusText)

	validate.RegisterStructValidation(newRequestStructValidation, NewRequest{})
	core.RegisterCustomTranslation(validate, translator, endNotBeforeStartTag, endNotBeforeStartText)
}

// reviewStatusValidation only accepts final statuses: nothing goes back to PENDING.
func reviewStatusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).IsReviewed()
}

func newRequestStructValidation(sl validator.StructLevel) {
	nr, ok := sl.Current().Interface().(NewRequest)
	if !ok {
		return
	}
	start, err := core.ParseTime(nr.StartDate)
	if err != nil {
		return
	}
	end, err := core.ParseTime(nr.EndDate)
	if err != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(nr.EndDate, "end_date", "EndDate", endNotBeforeStartTag, "")
	}
}

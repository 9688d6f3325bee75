// Package preferences provides the work/break duration inputs.
package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomoblock/internal/core/model"
)

// Form holds the duration entries.
type Form struct {
	work    *widget.Entry
	brk     *widget.Entry
	content fyne.CanvasObject
}

// NewForm creates entries pre-filled with durations.
func NewForm(durations model.Durations) *Form {
	work := widget.NewEntry()
	brk := widget.NewEntry()
	work.Validator = minutesValidator(model.MinWorkMinutes, model.MaxWorkMinutes)
	brk.Validator = minutesValidator(model.MinBreakMinutes, model.MaxBreakMinutes)

	form := &Form{
		work: work,
		brk:  brk,
		content: container.NewHBox(
			widget.NewLabelWithStyle("Work", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewGridWrap(fyne.NewSize(72, work.MinSize().Height), work),
			widget.NewLabel("min"),
			widget.NewLabelWithStyle("Break", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewGridWrap(fyne.NewSize(72, brk.MinSize().Height), brk),
			widget.NewLabel("min"),
		),
	}
	form.SetDurations(durations)
	return form
}

// Object returns the form's canvas object.
func (form *Form) Object() fyne.CanvasObject {
	return form.content
}

// SetDurations replaces the entry values.
func (form *Form) SetDurations(durations model.Durations) {
	form.work.SetText(strconv.Itoa(durations.WorkMinutes))
	form.brk.SetText(strconv.Itoa(durations.BreakMinutes))
}

// SetEnabled toggles both entries.
func (form *Form) SetEnabled(enabled bool) {
	if enabled {
		form.work.Enable()
		form.brk.Enable()
		return
	}
	form.work.Disable()
	form.brk.Disable()
}

// Durations parses the entries and clamps them into range, writing the
// clamped values back to the entries.
func (form *Form) Durations() (model.Durations, error) {
	work, err := parseMinutes("work", form.work.Text)
	if err != nil {
		return model.Durations{}, err
	}
	brk, err := parseMinutes("break", form.brk.Text)
	if err != nil {
		return model.Durations{}, err
	}

	durations := model.Durations{WorkMinutes: work, BreakMinutes: brk}.Clamp()
	form.SetDurations(durations)
	return durations, nil
}

func parseMinutes(field, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s minutes must be a whole number", field)
	}
	return parsed, nil
}

func minutesValidator(minValue, maxValue int) fyne.StringValidator {
	return func(value string) error {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if parsed < minValue || parsed > maxValue {
			return fmt.Errorf("between %d and %d", minValue, maxValue)
		}
		return nil
	}
}

package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"carrental/internal/apperr"
	"carrental/internal/db"
	"carrental/internal/utils"
)

// VehicleRules holds the format and business constraints for vehicle records.
// The lookup tables are injected data, not hidden constants, so they can be
// overridden and tested in isolation.
type VehicleRules struct {
	PlatePatterns      []*regexp.Regexp
	ReservedPlateWords []string
	PlaceholderNames   []string
	ModelMismatches    map[string][]string
	MinYear            int
}

var (
	makeCharsetRe  = regexp.MustCompile(`^[a-zA-Z0-9\s\-&\.]+$`)
	modelCharsetRe = regexp.MustCompile(`^[a-zA-Z0-9\s\-&\./]+$`)
)

// DefaultVehicleRules returns the production rule set. The plate patterns
// cover regional formats (e.g. ABC-1234, LH12AB1234) plus generic
// alphanumeric and mixed forms.
func DefaultVehicleRules() VehicleRules {
	return VehicleRules{
		PlatePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^[A-Z]{2,3}-\d{2,4}$`),
			regexp.MustCompile(`^[A-Z]{2,3}\d{2,4}$`),
			regexp.MustCompile(`^[A-Z]{3}-\d{2}-\d{2,4}$`),
			regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z]{2}\d{4}$`),
			regexp.MustCompile(`^[A-Z0-9]{3,8}$`),
			regexp.MustCompile(`^[A-Z]{1,3}\d{1,4}[A-Z]{0,3}$`),
			regexp.MustCompile(`^[A-Z]{1,2}\d{1,4}[A-Z]{1,3}$`),
		},
		ReservedPlateWords: []string{"ADMIN", "GOVT", "POLICE", "TEST"},
		PlaceholderNames:   []string{"UNKNOWN", "N/A", "NULL", "NONE", "TEST"},
		ModelMismatches: map[string][]string{
			"TOYOTA": {"CIVIC", "ACCORD", "F150"},
			"HONDA":  {"COROLLA", "CAMRY", "MUSTANG"},
			"FORD":   {"CIVIC", "COROLLA", "ALTIMA"},
		},
		MinYear: 1950,
	}
}

// NormalizeVehicle rewrites make, model and plate into their canonical
// stored forms: trimmed title-cased names, uppercased plate with collapsed
// whitespace.
func NormalizeVehicle(v *db.Vehicle) {
	v.Make = utils.TitleCase(v.Make)
	v.Model = utils.TitleCase(v.Model)
	v.Plate = utils.NormalizePlate(v.Plate)
}

// Check validates an already-normalized vehicle record and reports every
// violated field at once. A nil result means the record is valid.
func (r VehicleRules) Check(v *db.Vehicle, now time.Time) *apperr.ValidationError {
	verr := apperr.NewValidationError()

	r.checkName(verr, "make", v.Make, makeCharsetRe,
		"Vehicle make contains invalid characters. Only letters, numbers, spaces, hyphens, ampersands, and periods are allowed.")
	r.checkName(verr, "model", v.Model, modelCharsetRe,
		"Vehicle model contains invalid characters. Only letters, numbers, spaces, hyphens, ampersands, periods, and forward slashes are allowed.")
	r.checkYear(verr, v.Year, now)
	r.checkPlate(verr, v.Plate)

	if v.Make != "" && v.Model != "" {
		makeUpper := strings.ToUpper(v.Make)
		modelUpper := strings.ToUpper(v.Model)
		if makeUpper == modelUpper {
			verr.Add("model", "Vehicle make and model cannot be identical.")
		} else if invalid, ok := r.ModelMismatches[makeUpper]; ok {
			for _, m := range invalid {
				if m == modelUpper {
					verr.Add("model", fmt.Sprintf("%s is not a valid model for %s.", v.Model, v.Make))
					break
				}
			}
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (r VehicleRules) checkName(verr *apperr.ValidationError, field, value string, charset *regexp.Regexp, charsetMsg string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, fmt.Sprintf("Vehicle %s cannot be empty.", field))
		return
	}
	if len(value) < 2 {
		verr.Add(field, fmt.Sprintf("Vehicle %s must be at least 2 characters.", field))
	}
	if !charset.MatchString(value) {
		verr.Add(field, charsetMsg)
	}
	upper := strings.ToUpper(value)
	for _, p := range r.PlaceholderNames {
		if upper == p {
			verr.Add(field, fmt.Sprintf("Please provide a valid vehicle %s.", field))
			break
		}
	}
}

func (r VehicleRules) checkYear(verr *apperr.ValidationError, year int, now time.Time) {
	maxYear := now.Year() + 1 // allow next year for new models
	if year > maxYear {
		verr.Add("year", fmt.Sprintf("Vehicle year cannot be in the future. Year cannot be more than %d.", maxYear))
	}
	if year < r.MinYear {
		verr.Add("year", fmt.Sprintf("Vehicle year must be %d or later.", r.MinYear))
	}
}

func (r VehicleRules) checkPlate(verr *apperr.ValidationError, plate string) {
	cleaned := utils.CleanPlate(plate)
	if cleaned == "" {
		verr.Add("plate", "License plate cannot be empty.")
		return
	}

	matched := false
	for _, p := range r.PlatePatterns {
		if p.MatchString(cleaned) {
			matched = true
			break
		}
	}
	if !matched {
		verr.Add("plate", "Invalid license plate format. Please use formats like ABC-1234, ABC1234, LH12AB1234, or AB-123.")
	}

	for _, w := range r.ReservedPlateWords {
		if strings.Contains(cleaned, w) {
			verr.Add("plate", "This license plate contains reserved words and cannot be used.")
			break
		}
	}
}

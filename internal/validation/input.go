package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation constants
const (
	MinTitleLength                  = 3
	MaxTitleLength                  = 200
	MinDescriptionLength            = 10
	MaxDescriptionLength            = 5000
	MaxLocationLength               = 200
	MaxOtherSpecializationLength    = 100
	MaxPersonalizedExpressionLength = 1000
	MaxNeededActorAmount            = 1000
	MaxSurfaceArea                  = 1000000.0
	MaxImagesPerMission             = 10
	MinTemplateNameLength           = 1
	MaxTemplateNameLength           = 100
)

// ValidateLength checks the rune length of a string.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateTitle checks a mission title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return ValidateLength("title", title, MinTitleLength, MaxTitleLength)
}

// ValidateDescription checks a mission description.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}
	return ValidateLength("description", description, MinDescriptionLength, MaxDescriptionLength)
}

// ValidateLocation checks a mission location.
func ValidateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("location is required")
	}
	return ValidateLength("location", location, 1, MaxLocationLength)
}

// ValidateDateRange checks the mission date window. The start may not lie in
// the past and the end may not precede the start.
func ValidateDateRange(start, end *time.Time, now time.Time) map[string]string {
	errs := map[string]string{}
	if start == nil {
		errs["start_date"] = "start date is required"
	}
	if end == nil {
		errs["end_date"] = "end date is required"
	}
	if start != nil && start.Before(now.Truncate(24*time.Hour)) {
		errs["start_date"] = "start date cannot be in the past"
	}
	if start != nil && end != nil && end.Before(*start) {
		errs["end_date"] = "end date cannot be before start date"
	}
	return errs
}

// ValidateActorAmount checks the required number of actors.
func ValidateActorAmount(amount int) error {
	if amount < 1 {
		return fmt.Errorf("at least one actor is required")
	}
	if amount > MaxNeededActorAmount {
		return fmt.Errorf("needed actor amount must be at most %d", MaxNeededActorAmount)
	}
	return nil
}

// ValidateSurfaceArea checks the surface area value.
func ValidateSurfaceArea(area float64) error {
	if area < 0 {
		return fmt.Errorf("surface area cannot be negative")
	}
	if area > MaxSurfaceArea {
		return fmt.Errorf("surface area must be at most %.0f", MaxSurfaceArea)
	}
	return nil
}

// ValidateImagePath checks that an image reference looks like a storage path
// produced by the media upload endpoint, not an arbitrary URL.
func ValidateImagePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("image path contains invalid segments")
	}
	if strings.HasPrefix(path, "/") || strings.Contains(path, "://") {
		return fmt.Errorf("image path must be a relative storage path")
	}
	return nil
}

// ValidateTemplateName checks a quick start template name.
func ValidateTemplateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("template name is required")
	}
	return ValidateLength("template name", name, MinTemplateNameLength, MaxTemplateNameLength)
}

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("invalid email format")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("email local part must be between 1 and 64 characters")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("email domain part must be between 1 and 255 characters")
	}
	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("email domain must contain a dot")
	}

	return nil
}

package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "pitchperfect/internal/platform/errors"
	"pitchperfect/internal/platform/id"
	"pitchperfect/internal/platform/slug"
)

const (
	MeetingPrefix            = "meeting_with_"
	MeetingExtension         = ".json"
	ResponseEvaluationPrefix = "response_evaluation_"
	MeetingEvaluationPrefix  = "meeting_evaluation_"
	TextExtension            = ".txt"

	UnknownCustomer = "Unknown Customer"
)

func ValidateProfile(profile string) error {
	if !slug.FileSafe(profile) {
		return fmt.Errorf("%w: customer profile %q", apperrors.ErrInvalidInput, profile)
	}
	return nil
}

func ValidateToken(token string) error {
	if _, err := time.Parse(id.TokenLayout, token); err != nil {
		return fmt.Errorf("%w: meeting token %q", apperrors.ErrInvalidInput, token)
	}
	return nil
}

func MeetingFilename(profile, token string) string {
	return MeetingPrefix + profile + "_" + token + MeetingExtension
}

func EvaluationFilename(profile, token string) string {
	return ResponseEvaluationPrefix + profile + "_" + token + TextExtension
}

func ReportFilename(profile, token string) string {
	return MeetingEvaluationPrefix + profile + "_" + token + TextExtension
}

// ParseArtifactName splits "<prefix><profile>_<token><ext>" into profile
// and token. ok is false when the name does not carry a valid token.
func ParseArtifactName(name, prefix, ext string) (profile, token string, ok bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return "", "", false
	}
	core := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
	if len(core) < len(id.TokenLayout)+2 {
		return "", "", false
	}
	token = core[len(core)-len(id.TokenLayout):]
	if core[len(core)-len(id.TokenLayout)-1] != '_' || ValidateToken(token) != nil {
		return "", "", false
	}
	return core[:len(core)-len(id.TokenLayout)-1], token, true
}

package itinerary

import "errors"

const (
	MinDays = 1
	MaxDays = 10
)

// User-facing errors. Messages are shown to the traveller as-is.
var (
	ErrEmptyCity      = errors.New("여행할 도시를 입력해주세요.")
	ErrDaysOutOfRange = errors.New("여행 일수는 1일에서 10일 사이로 입력해주세요.")
	ErrNoSpots        = errors.New("검색된 여행지가 없습니다. 다른 도시명을 입력해보세요.")
	ErrSourceFailed   = errors.New("일정 생성 중 오류가 발생했습니다.")
)

// IsValidationError reports whether err was raised before any spot fetch.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyCity) || errors.Is(err, ErrDaysOutOfRange)
}

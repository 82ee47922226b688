package domain_test

import (
	"contactbook/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T, name string, phones ...string) *domain.Record {
	t.Helper()

	r, err := domain.NewRecord(name, "")
	require.NoError(t, err)

	for _, p := range phones {
		require.NoError(t, r.AddPhone(p))
	}
	return r
}

func phoneValues(r *domain.Record) []string {
	var result []string
	for _, p := range r.Phones() {
		result = append(result, p.String())
	}
	return result
}

func TestNewRecord(t *testing.T) {
	r, err := domain.NewRecord("John", "")
	require.NoError(t, err)
	assert.Equal(t, "John", r.Name().Value())
	assert.Empty(t, r.Phones())

	_, hasBirthday := r.Birthday()
	assert.False(t, hasBirthday)

	_, err = domain.NewRecord("John", "1990-02-30")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddAndFindPhone(t *testing.T) {
	r := newTestRecord(t, "John", "1234567890", "5555555555")

	phone, ok := r.FindPhone("5555555555")
	require.True(t, ok)
	assert.Equal(t, "5555555555", phone.String())

	_, ok = r.FindPhone("0000000000")
	assert.False(t, ok)
}

func TestAddPhoneInvalidLeavesPhonesUnchanged(t *testing.T) {
	r := newTestRecord(t, "John", "1234567890")

	err := r.AddPhone("12345")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"1234567890"}, phoneValues(r))
}

func TestAddPhoneAllowsDuplicates(t *testing.T) {
	r := newTestRecord(t, "John", "1234567890", "1234567890")
	assert.Equal(t, []string{"1234567890", "1234567890"}, phoneValues(r))
}

func TestRemovePhone(t *testing.T) {
	testCases := map[string]struct {
		phones     []string
		remove     string
		wantPhones []string
	}{
		"removes every match": {
			phones:     []string{"1111111111", "2222222222", "1111111111"},
			remove:     "1111111111",
			wantPhones: []string{"2222222222"},
		},
		"no match is a no-op": {
			phones:     []string{"1111111111", "2222222222"},
			remove:     "3333333333",
			wantPhones: []string{"1111111111", "2222222222"},
		},
		"invalid text is a no-op": {
			phones:     []string{"1111111111"},
			remove:     "abc",
			wantPhones: []string{"1111111111"},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			r := newTestRecord(t, "John", tc.phones...)

			r.RemovePhone(tc.remove)

			assert.Equal(t, tc.wantPhones, phoneValues(r))
		})
	}
}

func TestEditPhone(t *testing.T) {
	testCases := map[string]struct {
		phones     []string
		oldPhone   string
		newPhone   string
		wantPhones []string
		wantErr    error
	}{
		"ok - replaces in place": {
			phones:     []string{"2222222222", "0000000000", "3333333333"},
			oldPhone:   "0000000000",
			newPhone:   "1111111111",
			wantPhones: []string{"2222222222", "1111111111", "3333333333"},
		},
		"ok - only first duplicate": {
			phones:     []string{"0000000000", "0000000000"},
			oldPhone:   "0000000000",
			newPhone:   "1111111111",
			wantPhones: []string{"1111111111", "0000000000"},
		},
		"error - ErrNotFound": {
			phones:     []string{"2222222222"},
			oldPhone:   "0000000000",
			newPhone:   "1111111111",
			wantPhones: []string{"2222222222"},
			wantErr:    domain.ErrNotFound,
		},
		"error - ErrValidation keeps old phone": {
			phones:     []string{"0000000000"},
			oldPhone:   "0000000000",
			newPhone:   "111",
			wantPhones: []string{"0000000000"},
			wantErr:    domain.ErrValidation,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			r := newTestRecord(t, "John", tc.phones...)

			err := r.EditPhone(tc.oldPhone, tc.newPhone)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantPhones, phoneValues(r))
		})
	}
}

func TestEditPhoneFindsUnderNewValue(t *testing.T) {
	r := newTestRecord(t, "John", "0000000000")

	require.NoError(t, r.EditPhone("0000000000", "1111111111"))

	_, ok := r.FindPhone("0000000000")
	assert.False(t, ok)
	_, ok = r.FindPhone("1111111111")
	assert.True(t, ok)
}

func TestPhonesReturnsCopy(t *testing.T) {
	r := newTestRecord(t, "John", "0000000000")

	phones := r.Phones()
	phones[0] = domain.NewName("tampered")

	assert.Equal(t, []string{"0000000000"}, phoneValues(r))
}

func TestDaysToBirthday(t *testing.T) {
	testCases := map[string]struct {
		birthday string
		today    time.Time
		wantDays int
	}{
		"today": {
			birthday: "1990-10-18",
			today:    time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC),
			wantDays: 0,
		},
		"tomorrow": {
			birthday: "1990-10-19",
			today:    time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC),
			wantDays: 1,
		},
		"yesterday rolls to next year": {
			birthday: "1990-10-17",
			today:    time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC),
			wantDays: 364,
		},
		"across new year": {
			birthday: "1985-01-01",
			today:    time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			wantDays: 1,
		},
		"leap day in leap year": {
			birthday: "2000-02-29",
			today:    time.Date(2028, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantDays: 28,
		},
		"leap day in non-leap year falls on feb 28": {
			birthday: "2000-02-29",
			today:    time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantDays: 27,
		},
		"leap day passed rolls to next leap year": {
			birthday: "2000-02-29",
			today:    time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
			wantDays: 365,
		},
		"other time zone uses its calendar date": {
			birthday: "1990-10-18",
			today:    time.Date(2026, time.October, 18, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
			wantDays: 0,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			r, err := domain.NewRecord("John", tc.birthday)
			require.NoError(t, err)

			days, ok := r.DaysToBirthday(tc.today)

			assert.True(t, ok)
			assert.Equal(t, tc.wantDays, days)
		})
	}
}

func TestDaysToBirthdayWithoutBirthday(t *testing.T) {
	r := newTestRecord(t, "John")

	_, ok := r.DaysToBirthday(time.Now())
	assert.False(t, ok)
}

func TestSetBirthday(t *testing.T) {
	r := newTestRecord(t, "John")

	require.NoError(t, r.SetBirthday("1990-05-17"))
	birthday, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, "1990-05-17", birthday.Value())

	assert.ErrorIs(t, r.SetBirthday("17.05.1990"), domain.ErrValidation)
	birthday, _ = r.Birthday()
	assert.Equal(t, "1990-05-17", birthday.Value())

	require.NoError(t, r.SetBirthday(""))
	_, ok = r.Birthday()
	assert.False(t, ok)
}

func TestRecordString(t *testing.T) {
	r := newTestRecord(t, "John", "1234567890", "5555555555")
	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555", r.String())

	empty := newTestRecord(t, "Jane")
	assert.Equal(t, "Contact name: Jane, phones: ", empty.String())
}

func TestClone(t *testing.T) {
	r, err := domain.NewRecord("John", "1990-05-17")
	require.NoError(t, err)
	require.NoError(t, r.AddPhone("1234567890"))

	c := r.Clone()
	require.NoError(t, c.AddPhone("5555555555"))
	require.NoError(t, c.SetBirthday("2000-01-01"))
	c.Rename("Johnny")

	assert.Equal(t, "Contact name: John, phones: 1234567890", r.String())
	birthday, _ := r.Birthday()
	assert.Equal(t, "1990-05-17", birthday.Value())
}

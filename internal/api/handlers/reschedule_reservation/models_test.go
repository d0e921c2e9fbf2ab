package reschedule_reservation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staffId различает три состояния: поле отсутствует (не менять),
// явный null (снять сотрудника) и число (назначить).
func TestToUseCaseRequest_StaffID(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		staffProvided bool
		staffID       *int64
	}{
		{
			name:          "field absent keeps current staff",
			body:          `{"startTime":"10:30"}`,
			staffProvided: false,
		},
		{
			name:          "explicit null clears staff",
			body:          `{"staffId":null}`,
			staffProvided: true,
			staffID:       nil,
		},
		{
			name:          "number assigns staff",
			body:          `{"staffId":7}`,
			staffProvided: true,
			staffID:       func() *int64 { v := int64(7); return &v }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RescheduleRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			ucReq, err := req.ToUseCaseRequest("demo-salon", 42)
			require.NoError(t, err)

			assert.Equal(t, "demo-salon", ucReq.TenantSlug)
			assert.Equal(t, int64(42), ucReq.ReservationID)
			assert.Equal(t, tt.staffProvided, ucReq.StaffProvided)
			if tt.staffID == nil {
				assert.Nil(t, ucReq.StaffID)
			} else {
				require.NotNil(t, ucReq.StaffID)
				assert.Equal(t, *tt.staffID, *ucReq.StaffID)
			}
		})
	}
}

func TestToUseCaseRequest_DateAndTime(t *testing.T) {
	date := "2025-10-15"
	startTime := "10:30"
	req := RescheduleRequest{Date: &date, StartTime: &startTime}

	ucReq, err := req.ToUseCaseRequest("demo-salon", 1)
	require.NoError(t, err)

	require.NotNil(t, ucReq.Date)
	assert.Equal(t, "2025-10-15", ucReq.Date.Format("2006-01-02"))
	require.NotNil(t, ucReq.StartTime)
	assert.Equal(t, "10:30", ucReq.StartTime.String())
}

func TestToUseCaseRequest_Invalid(t *testing.T) {
	badDate := "15.10.2025"
	req := RescheduleRequest{Date: &badDate}
	_, err := req.ToUseCaseRequest("demo-salon", 1)
	assert.Error(t, err)

	badTime := "25:99"
	req = RescheduleRequest{StartTime: &badTime}
	_, err = req.ToUseCaseRequest("demo-salon", 1)
	assert.Error(t, err)
}

package scheduling

import (
	"reflect"
	"testing"
)

func TestEligibleDoctors(t *testing.T) {
	doctors := []DoctorAvailability{
		NewDoctorAvailability(1, []string{"Dentistry"}, nil, nil),
		NewDoctorAvailability(2, []string{"Surgery", "Dentistry"}, nil, nil),
		NewDoctorAvailability(3, nil, nil, nil),
	}

	cases := []struct {
		name    string
		req     AppointmentRequest
		wantIDs []int
	}{
		{"no filters", AppointmentRequest{}, []int{1, 2, 3}},
		{"required specialty", AppointmentRequest{RequiredSpecialties: []string{"Surgery"}}, []int{2}},
		{"unmatched specialty", AppointmentRequest{RequiredSpecialties: []string{"Cardiology"}}, nil},
		{"allow-list", AppointmentRequest{AllowedDoctorIDs: []int{1, 3}}, []int{1, 3}},
		{"allow-list and specialty", AppointmentRequest{AllowedDoctorIDs: []int{1}, RequiredSpecialties: []string{"Surgery"}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := normalizeForTest(tc.req)
			if err != nil {
				t.Fatal(err)
			}
			var got []int
			for _, d := range EligibleDoctors(doctors, req) {
				got = append(got, d.ID)
			}
			if !reflect.DeepEqual(got, tc.wantIDs) {
				t.Fatalf("eligible ids = %v, want %v", got, tc.wantIDs)
			}
		})
	}
}

func TestEligibleRooms(t *testing.T) {
	rooms := []RoomAvailability{
		NewRoomAvailability(1, "Exam", []string{"X-Ray"}, nil, nil),
		NewRoomAvailability(2, "Surgery", []string{"Anesthesia", "X-Ray"}, nil, nil),
		NewRoomAvailability(3, "", nil, nil, nil),
	}

	cases := []struct {
		name    string
		req     AppointmentRequest
		wantIDs []int
	}{
		{"no filters", AppointmentRequest{}, []int{1, 2, 3}},
		{"room type", AppointmentRequest{RequiredRoomType: "Surgery"}, []int{2}},
		{"equipment superset", AppointmentRequest{RequiredEquipment: []string{"X-Ray"}}, []int{1, 2}},
		{"all equipment", AppointmentRequest{RequiredEquipment: []string{"Anesthesia", "X-Ray"}}, []int{2}},
		{"allow-list", AppointmentRequest{AllowedRoomIDs: []int{3}}, []int{3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := normalizeForTest(tc.req)
			if err != nil {
				t.Fatal(err)
			}
			var got []int
			for _, r := range EligibleRooms(rooms, req) {
				got = append(got, r.ID)
			}
			if !reflect.DeepEqual(got, tc.wantIDs) {
				t.Fatalf("eligible ids = %v, want %v", got, tc.wantIDs)
			}
		})
	}
}

func TestEligibilityFilteringIsIdempotent(t *testing.T) {
	doctors := []DoctorAvailability{
		NewDoctorAvailability(1, []string{"Dentistry"}, nil, nil),
		NewDoctorAvailability(2, []string{"Surgery"}, nil, nil),
	}
	req, err := normalizeForTest(AppointmentRequest{RequiredSpecialties: []string{"Surgery"}})
	if err != nil {
		t.Fatal(err)
	}

	once := EligibleDoctors(doctors, req)
	twice := EligibleDoctors(once, req)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering twice changed the result: %v vs %v", once, twice)
	}
}

// normalizeForTest fills in a valid horizon so Normalize only exercises the
// categorical cleanup.
func normalizeForTest(req AppointmentRequest) (AppointmentRequest, error) {
	req.Start = at(9, 0)
	req.End = at(17, 0)
	req.DurationMinutes = 30
	req.GranularityMinutes = 30
	return req.Normalize()
}

package scheduling

// EligibleDoctors returns the doctors passing the request's categorical gates:
// membership in the allow-list (when non-empty) and possession of every
// required specialty. Time-based feasibility is not considered here.
func EligibleDoctors(doctors []DoctorAvailability, req AppointmentRequest) []DoctorAvailability {
	eligible := make([]DoctorAvailability, 0, len(doctors))
	for _, doctor := range doctors {
		if !idAllowed(req.AllowedDoctorIDs, doctor.ID) {
			continue
		}
		if !containsAll(doctor.Specialties, req.RequiredSpecialties) {
			continue
		}
		eligible = append(eligible, doctor)
	}
	return eligible
}

// EligibleRooms returns the rooms passing the allow-list, room type, and
// equipment gates.
func EligibleRooms(rooms []RoomAvailability, req AppointmentRequest) []RoomAvailability {
	eligible := make([]RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		if !idAllowed(req.AllowedRoomIDs, room.ID) {
			continue
		}
		if req.RequiredRoomType != "" && room.RoomType != req.RequiredRoomType {
			continue
		}
		if !containsAll(room.Equipment, req.RequiredEquipment) {
			continue
		}
		eligible = append(eligible, room)
	}
	return eligible
}

func idAllowed(allowed []int, id int) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, v := range allowed {
		if v == id {
			return true
		}
	}
	return false
}

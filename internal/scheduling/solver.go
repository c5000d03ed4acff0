package scheduling

import (
	"sort"
	"time"
)

// Predicate vetoes a (doctor, room, start) assignment that already passed the
// individual feasibility checks. Extra rules that span doctor and room together
// (rest-time gaps, concurrency caps) can be added here without changing the
// output contract.
type Predicate func(doctor *DoctorAvailability, room *RoomAvailability, start, end time.Time) bool

// FindFeasibleSlots enumerates every (doctor, room, start) triple satisfying
// the request, clinic rules, and both resources' windows. The result is exact
// and complete: the full cross-product of doctor-feasible and room-feasible
// pairs per candidate start, sorted ascending by (start, doctor id, room id).
//
// Empty eligible sets, an empty candidate sequence, or no satisfying triple all
// yield an empty list; the only errors are request validation failures.
func FindFeasibleSlots(doctors []DoctorAvailability, rooms []RoomAvailability, req AppointmentRequest, clinic ClinicSchedule) ([]Slot, error) {
	return FindFeasibleSlotsWith(doctors, rooms, req, clinic)
}

// FindFeasibleSlotsWith is FindFeasibleSlots with additional pairwise
// predicates applied to each candidate assignment.
func FindFeasibleSlotsWith(doctors []DoctorAvailability, rooms []RoomAvailability, req AppointmentRequest, clinic ClinicSchedule, extra ...Predicate) ([]Slot, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	eligibleDoctors := EligibleDoctors(doctors, req)
	if len(eligibleDoctors) == 0 {
		return nil, nil
	}
	eligibleRooms := EligibleRooms(rooms, req)
	if len(eligibleRooms) == 0 {
		return nil, nil
	}

	duration := req.Duration()

	var slots []Slot
	for start := range CandidateStarts(req, clinic) {
		end := start.Add(duration)

		freeDoctors := freeDoctorsAt(eligibleDoctors, start, end)
		if len(freeDoctors) == 0 {
			continue
		}
		freeRooms := freeRoomsAt(eligibleRooms, start, end)
		if len(freeRooms) == 0 {
			continue
		}

		for di := range freeDoctors {
			for ri := range freeRooms {
				if !assignmentAllowed(&freeDoctors[di], &freeRooms[ri], start, end, extra) {
					continue
				}
				slots = append(slots, Slot{
					DoctorID: freeDoctors[di].ID,
					RoomID:   freeRooms[ri].ID,
					Start:    start,
					End:      end,
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		if slots[i].DoctorID != slots[j].DoctorID {
			return slots[i].DoctorID < slots[j].DoctorID
		}
		return slots[i].RoomID < slots[j].RoomID
	})
	return slots, nil
}

func assignmentAllowed(doctor *DoctorAvailability, room *RoomAvailability, start, end time.Time, extra []Predicate) bool {
	for _, allowed := range extra {
		if !allowed(doctor, room, start, end) {
			return false
		}
	}
	return true
}

func freeDoctorsAt(doctors []DoctorAvailability, start, end time.Time) []DoctorAvailability {
	free := make([]DoctorAvailability, 0, len(doctors))
	for _, d := range doctors {
		if resourceFree(d.AvailableWindows, d.UnavailableWindows, start, end) {
			free = append(free, d)
		}
	}
	return free
}

func freeRoomsAt(rooms []RoomAvailability, start, end time.Time) []RoomAvailability {
	free := make([]RoomAvailability, 0, len(rooms))
	for _, r := range rooms {
		if resourceFree(r.AvailableWindows, r.UnavailableWindows, start, end) {
			free = append(free, r)
		}
	}
	return free
}

// resourceFree is the shared freeness predicate: available everywhere when no
// availability windows are declared, otherwise some window must contain the
// slot, and no unavailable window may overlap it.
func resourceFree(available, unavailable []TimeWindow, start, end time.Time) bool {
	if len(available) > 0 {
		inside := false
		for _, w := range available {
			if w.Contains(start, end) {
				inside = true
				break
			}
		}
		if !inside {
			return false
		}
	}
	for _, w := range unavailable {
		if w.Overlaps(start, end) {
			return false
		}
	}
	return true
}

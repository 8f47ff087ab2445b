package schedule

import (
	"fmt"
	"strings"
)

// Role resolves the rotation position of the shift. An explicit RotationRole
// wins; shifts stored before the field existed are matched by
// case-insensitive substring of their display name, which is how the
// dashboard always identified the three canonical shifts.
func (s ShiftTime) Role() RotationRole {
	if s.RotationRole != RoleNone {
		return s.RotationRole
	}

	name := strings.ToLower(s.Name)
	switch {
	case strings.Contains(name, "morning"):
		return RoleMorning
	case strings.Contains(name, "afternoon"):
		return RoleAfternoon
	case strings.Contains(name, "night"):
		return RoleNight
	default:
		return RoleNone
	}
}

// next returns the cyclically following role.
func (r RotationRole) next() RotationRole {
	switch r {
	case RoleMorning:
		return RoleAfternoon
	case RoleAfternoon:
		return RoleNight
	case RoleNight:
		return RoleMorning
	default:
		return RoleNone
	}
}

// prev returns the cyclically preceding role.
func (r RotationRole) prev() RotationRole {
	switch r {
	case RoleMorning:
		return RoleNight
	case RoleAfternoon:
		return RoleMorning
	case RoleNight:
		return RoleAfternoon
	default:
		return RoleNone
	}
}

// ApplyRotation applies an edit of one shift's time fields to the full shift
// list and fixes up the edited shift's cyclic neighbors so the three
// rotating shifts keep tiling the 24-hour cycle:
//
//	next.startTime := edited.endTime
//	prev.endTime   := edited.startTime
//
// The fix-up is single-level: neighbor updates never trigger another
// propagation pass. A shift with no rotation role is replaced as-is. A
// missing neighbor is skipped silently. Time values are copied verbatim as
// "HH:MM" strings; no arithmetic or ordering validation is performed.
//
// Returns the updated list plus the ids of every shift written (the edited
// one and 0-2 neighbors) so the caller can treat them as one batch.
func ApplyRotation(edited ShiftTime, shifts []ShiftTime) ([]ShiftTime, []string, error) {
	out := make([]ShiftTime, len(shifts))
	copy(out, shifts)

	editedIdx := -1
	for i, s := range out {
		if s.ID == edited.ID {
			editedIdx = i
			break
		}
	}
	if editedIdx == -1 {
		return nil, nil, fmt.Errorf("%w: %s", ErrShiftTimeNotFound, edited.ID)
	}
	out[editedIdx] = edited
	written := []string{edited.ID}

	role := edited.Role()
	if role == RoleNone {
		// Manual edit stands alone.
		return out, written, nil
	}
	if err := uniqueRole(out, editedIdx, role); err != nil {
		return nil, nil, err
	}

	if idx, err := findRole(out, editedIdx, role.next()); err != nil {
		return nil, nil, err
	} else if idx >= 0 {
		out[idx].StartTime = edited.EndTime
		written = append(written, out[idx].ID)
	}

	if idx, err := findRole(out, editedIdx, role.prev()); err != nil {
		return nil, nil, err
	} else if idx >= 0 {
		out[idx].EndTime = edited.StartTime
		written = append(written, out[idx].ID)
	}

	return out, written, nil
}

// findRole locates the single shift (other than the one at skip) holding the
// role. Absence is not an error: the neighbor may have been renamed or
// deleted and its update is then skipped. Two candidates for the same role
// is an ErrAmbiguousRole.
func findRole(shifts []ShiftTime, skip int, role RotationRole) (int, error) {
	found := -1
	for i, s := range shifts {
		if i == skip || s.Role() != role {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %s", ErrAmbiguousRole, role)
		}
		found = i
	}
	return found, nil
}

// uniqueRole rejects the edit when another shift already resolves to the
// edited shift's own role.
func uniqueRole(shifts []ShiftTime, editedIdx int, role RotationRole) error {
	for i, s := range shifts {
		if i != editedIdx && s.Role() == role {
			return fmt.Errorf("%w: %s", ErrAmbiguousRole, role)
		}
	}
	return nil
}

package boundary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// CommandKind identifies a capture command.
type CommandKind string

const (
	CommandAdd     CommandKind = "add"
	CommandUndo    CommandKind = "undo"
	CommandClear   CommandKind = "clear"
	CommandConfirm CommandKind = "confirm"
	CommandCancel  CommandKind = "cancel"
)

// Command is one discrete event from the capture surface. Each map click is a
// complete command, so commands are applied one at a time with no buffering.
type Command struct {
	Kind  CommandKind
	Point domain.GeoPoint // set for CommandAdd
}

// AddPoint returns the command for a map click at (lat, lng).
func AddPoint(lat, lng float64) Command {
	return Command{Kind: CommandAdd, Point: domain.GeoPoint{Latitude: lat, Longitude: lng}}
}

// Apply runs cmd against the session synchronously.
func (s *Session) Apply(cmd Command) error {
	switch cmd.Kind {
	case CommandAdd:
		return s.Add(cmd.Point)
	case CommandUndo:
		return s.Undo()
	case CommandClear:
		return s.Clear()
	case CommandConfirm:
		_, err := s.Confirm()
		return err
	case CommandCancel:
		s.Reset()
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd.Kind)
}

// ParseCommand decodes the textual command form:
//
//	add <lat> <lng> | undo | clear | confirm | cancel
//
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, domain.NewValidationError("command", "empty")
	}

	kind := CommandKind(strings.ToLower(fields[0]))
	switch kind {
	case CommandUndo, CommandClear, CommandConfirm, CommandCancel:
		if len(fields) != 1 {
			return Command{}, domain.NewValidationError("command", fmt.Sprintf("%s takes no arguments", kind))
		}
		return Command{Kind: kind}, nil
	case CommandAdd:
		if len(fields) != 3 {
			return Command{}, domain.NewValidationError("command", "usage: add <lat> <lng>")
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
			return Command{}, domain.NewValidationError("latitude", "must be a number in [-90, 90]")
		}
		lng, err := strconv.ParseFloat(fields[2], 64)
		if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
			return Command{}, domain.NewValidationError("longitude", "must be a number in [-180, 180]")
		}
		return AddPoint(lat, lng), nil
	}
	return Command{}, domain.NewValidationError("command", fmt.Sprintf("unknown command %q", fields[0]))
}

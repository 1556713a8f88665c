// Package gamelog reads Ursula engine gameplay logs: the player start
// header, the scene table and the event stream. It materializes the scene
// and hands validated events to a handler; it knows nothing about tasks
// or conditions.
package gamelog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ursulacheck/internal/geom"
	"ursulacheck/internal/scene"
	"ursulacheck/internal/status"
	"ursulacheck/internal/task"
	"ursulacheck/internal/textio"
)

// Log markers.
const (
	playerStartPrefix = "Player Start Position"
	sceneHeaderPrefix = "ID | Name | Object ID | Type | Position | HP | Damage"
	hlinePrefix       = "---"

	playerToken     = "Player"
	positionKeyword = "position:"

	attackPrefix    = "attack "
	attackedPrefix  = "attacked "
	diedToken       = "died"
	gameOverPrefix  = "Game Over: "
	gameOverWin     = "Win"
	sessionEndedTag = "Session ended"

	mobTypeName    = "mob"
	intObjTypeName = "interactive_object"
)

const sceneFieldCount = 7

// EventKind discriminates the event stream entries a handler can observe.
type EventKind int

const (
	// Tick follows a batch of position updates; the payload carries no
	// actors, conditions read the refreshed world state.
	Tick EventKind = iota
	// Attack carries the attacker as primary and the target as secondary.
	Attack
	// Attacked carries the struck object as primary.
	Attacked
	// Died carries the destroyed object as primary.
	Died
	// Won signals a winning game-over line.
	Won
)

// Event is one dispatched log event. Primary and Secondary are indices
// into the scene's object slice, -1 when the kind carries no such actor.
type Event struct {
	Time      uint64
	Kind      EventKind
	Primary   int
	Secondary int
	Damage    float64
}

// Handler consumes the replayed log. SceneReady fires once, after the
// scene table closed and the Player was appended; Event fires per
// dispatched event with positions already applied.
type Handler interface {
	SceneReady(objects []scene.Object) error
	Event(ev Event, objects []scene.Object) error
}

type state int

const (
	awaitPlayerStart state = iota
	awaitSceneHeader
	readScene
	readEvents
)

// Replay drives a full log through the handler. The event loop closes on
// a "Session ended" line or, equally, on EOF.
func Replay(r io.Reader, h Handler) error {
	var (
		st          = awaitPlayerStart
		playerStart geom.Point
		objects     []scene.Object
		sawBand     bool
	)

	lineNo := 0
	sc := textio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		switch st {
		case awaitPlayerStart:
			if !strings.HasPrefix(line, playerStartPrefix) {
				continue
			}
			pos, err := geom.ParsePoint(line[len(playerStartPrefix):])
			if err != nil {
				return fmt.Errorf("line %d: player start position: %w", lineNo, err)
			}
			playerStart = pos
			st = awaitSceneHeader

		case awaitSceneHeader:
			if strings.HasPrefix(line, sceneHeaderPrefix) {
				st = readScene
			}

		case readScene:
			if strings.HasPrefix(line, hlinePrefix) {
				if len(objects) == 0 && !sawBand {
					sawBand = true
					continue
				}
				objects = append(objects, scene.Object{
					Type:    task.Player,
					Pos:     playerStart,
					PrevPos: playerStart,
				})
				if err := h.SceneReady(objects); err != nil {
					return err
				}
				st = readEvents
				continue
			}
			obj, err := parseSceneRow(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			objects = append(objects, obj)

		case readEvents:
			done, err := dispatchEvent(line, objects, h)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			if done {
				return nil
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading log: %w", status.ErrFormat)
	}

	// EOF without "Session ended" closes the event loop normally.
	return nil
}

// parseSceneRow reads one pipe-separated scene table row:
// id | class | node id (ignored) | type | (x,y) | hp | dmg.
func parseSceneRow(line string) (scene.Object, error) {
	fields := strings.Split(line, "|")
	if len(fields) != sceneFieldCount {
		return scene.Object{}, fmt.Errorf("scene row %q: expected %d fields: %w",
			line, sceneFieldCount, status.ErrFormat)
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	var obj scene.Object
	if fields[0] == "" {
		return scene.Object{}, fmt.Errorf("scene row %q: empty object id: %w", line, status.ErrFormat)
	}
	obj.ID = textio.Clip(fields[0])
	if fields[1] == "" {
		return scene.Object{}, fmt.Errorf("scene row %q: empty object class: %w", line, status.ErrFormat)
	}
	obj.Class = textio.Clip(fields[1])

	switch fields[3] {
	case mobTypeName:
		obj.Type = task.Mob
	case intObjTypeName:
		obj.Type = task.IntObject
	default:
		obj.Type = task.Static
	}

	pos, err := geom.ParsePoint(fields[4])
	if err != nil {
		return scene.Object{}, fmt.Errorf("scene row %q: %w", line, err)
	}
	obj.Pos = pos
	obj.PrevPos = pos

	if obj.HP, err = strconv.ParseFloat(fields[5], 64); err != nil {
		return scene.Object{}, fmt.Errorf("scene row %q: bad hp: %w", line, status.ErrFormat)
	}
	if obj.Damage, err = strconv.ParseFloat(fields[6], 64); err != nil {
		return scene.Object{}, fmt.Errorf("scene row %q: bad damage: %w", line, status.ErrFormat)
	}

	return obj, nil
}

// dispatchEvent recognizes one event line. Lines without the [time] stamp
// are skipped; a stamped line with an unrecognized tail is an error. The
// returned flag closes the event loop.
func dispatchEvent(line string, objects []scene.Object, h Handler) (bool, error) {
	if !strings.HasPrefix(line, "[") {
		return false, nil
	}
	stamp, tail, ok := strings.Cut(line[1:], "]")
	if !ok {
		return false, fmt.Errorf("event %q: unterminated time stamp: %w", line, status.ErrFormat)
	}
	time, err := strconv.ParseUint(strings.TrimSpace(stamp), 10, 64)
	if err != nil {
		return false, fmt.Errorf("event %q: bad time stamp: %w", line, status.ErrFormat)
	}
	tail = strings.TrimSpace(tail)

	switch {
	case strings.Contains(tail, positionKeyword):
		if err := applyPositions(tail, objects); err != nil {
			return false, err
		}
		return false, h.Event(Event{Time: time, Kind: Tick, Primary: -1, Secondary: -1}, objects)

	case strings.HasPrefix(tail, attackPrefix):
		ev, err := parseAttack(time, tail[len(attackPrefix):], objects)
		if err != nil {
			return false, err
		}
		return false, h.Event(ev, objects)

	case strings.HasPrefix(tail, attackedPrefix):
		ev, err := parseAttacked(time, tail[len(attackedPrefix):], objects)
		if err != nil {
			return false, err
		}
		return false, h.Event(ev, objects)

	case strings.Contains(tail, diedToken):
		idx := strings.IndexByte(tail, ' ')
		if idx < 0 {
			return false, fmt.Errorf("event %q: bad died entry: %w", tail, status.ErrFormat)
		}
		victim, err := resolveObject(tail[:idx], objects)
		if err != nil {
			return false, err
		}
		return false, h.Event(Event{Time: time, Kind: Died, Primary: victim, Secondary: -1}, objects)

	case strings.HasPrefix(tail, gameOverPrefix):
		if tail[len(gameOverPrefix):] != gameOverWin {
			return false, nil
		}
		return false, h.Event(Event{Time: time, Kind: Won, Primary: -1, Secondary: -1}, objects)

	case strings.HasPrefix(tail, sessionEndedTag):
		return true, nil

	default:
		return false, fmt.Errorf("event %q: unknown event: %w", tail, status.ErrFormat)
	}
}

// applyPositions processes a semicolon-separated batch of
// "id position: (x,y)" entries; the keyword is optional in every entry,
// so "Player (x,y)" is accepted too.
// Previous positions are saved before the new ones land.
func applyPositions(tail string, objects []scene.Object) error {
	for _, entry := range strings.Split(tail, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		idx := strings.IndexByte(entry, ' ')
		if idx < 0 {
			return fmt.Errorf("position entry %q: missing coordinates: %w", entry, status.ErrFormat)
		}
		target, err := resolveObject(entry[:idx], objects)
		if err != nil {
			return err
		}

		rest := strings.TrimSpace(entry[idx+1:])
		rest = strings.TrimSpace(strings.TrimPrefix(rest, positionKeyword))
		pos, err := geom.ParsePoint(rest)
		if err != nil {
			return fmt.Errorf("position entry %q: %w", entry, err)
		}

		obj := &objects[target]
		obj.PrevPos = obj.Pos
		obj.Pos = pos
	}
	return nil
}

// parseAttack reads "attacker <_> dmg <_> target", the target id being
// everything after the first four space-separated fields.
func parseAttack(time uint64, tail string, objects []scene.Object) (Event, error) {
	parts := strings.SplitN(tail, " ", 5)
	if len(parts) < 5 {
		return Event{}, fmt.Errorf("attack entry %q: too few fields: %w", tail, status.ErrFormat)
	}
	attacker, err := resolveObject(parts[0], objects)
	if err != nil {
		return Event{}, err
	}
	damage, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Event{}, fmt.Errorf("attack entry %q: bad damage: %w", tail, status.ErrFormat)
	}
	target, err := resolveObject(parts[4], objects)
	if err != nil {
		return Event{}, err
	}
	return Event{Time: time, Kind: Attack, Primary: attacker, Secondary: target, Damage: damage}, nil
}

// parseAttacked reads "target ..., dmg, ..."; the struck object is the
// first field and the damage the fourth, both with a trailing comma.
func parseAttacked(time uint64, tail string, objects []scene.Object) (Event, error) {
	parts := strings.SplitN(tail, " ", 5)
	if len(parts) < 5 {
		return Event{}, fmt.Errorf("attacked entry %q: too few fields: %w", tail, status.ErrFormat)
	}
	target, err := resolveObject(strings.TrimSuffix(parts[0], ","), objects)
	if err != nil {
		return Event{}, err
	}
	damage, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], ","), 64)
	if err != nil {
		return Event{}, fmt.Errorf("attacked entry %q: bad damage: %w", tail, status.ErrFormat)
	}
	return Event{Time: time, Kind: Attacked, Primary: target, Secondary: -1, Damage: damage}, nil
}

// resolveObject maps the literal Player token or an object id to its
// scene index.
func resolveObject(token string, objects []scene.Object) (int, error) {
	for i := range objects {
		if objects[i].Type == task.Player {
			if token == playerToken {
				return i, nil
			}
		} else if objects[i].ID == token {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown object %q: %w", token, status.ErrFormat)
}

package lr1

import (
	"encoding/binary"
	"fmt"
)

// MarshalBinary and UnmarshalBinary give Table a stable on-disk form for
// internal/tablecache: the ACTION and GOTO arrays are exactly what Parse
// needs to drive the automaton, so the numbered item sets used only during
// construction are not serialized.

func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	binary.PutVarint(enc, int64(i))
	return enc
}

// decBinaryInt always consumes 8 bytes.
func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("data does not contain 8 bytes")
	}
	val, read := binary.Varint(data[:8])
	if read <= 0 {
		return 0, 0, fmt.Errorf("malformed varint")
	}
	return int(val), 8, nil
}

func (a action) marshalBinary() []byte {
	data := encBinaryInt(int(a.kind))
	data = append(data, encBinaryInt(a.state)...)
	data = append(data, encBinaryInt(a.lhs)...)
	data = append(data, encBinaryInt(a.alt)...)
	return data
}

func (a *action) unmarshalBinary(data []byte) (int, error) {
	var kind, read int
	var err error
	total := 0

	if kind, read, err = decBinaryInt(data); err != nil {
		return 0, err
	}
	a.kind = actionKind(kind)
	data, total = data[read:], total+read

	if a.state, read, err = decBinaryInt(data); err != nil {
		return 0, err
	}
	data, total = data[read:], total+read

	if a.lhs, read, err = decBinaryInt(data); err != nil {
		return 0, err
	}
	data, total = data[read:], total+read

	if a.alt, read, err = decBinaryInt(data); err != nil {
		return 0, err
	}
	total += read

	return total, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Table) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, encBinaryInt(t.initial)...)
	data = append(data, encBinaryInt(len(t.action))...)

	for i := range t.action {
		data = append(data, encBinaryInt(len(t.action[i]))...)
		for sym, act := range t.action[i] {
			data = append(data, encBinaryInt(sym)...)
			data = append(data, act.marshalBinary()...)
		}

		data = append(data, encBinaryInt(len(t.goTo[i]))...)
		for sym, target := range t.goTo[i] {
			data = append(data, encBinaryInt(sym)...)
			data = append(data, encBinaryInt(target)...)
		}
	}

	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The receiver's g
// field is left nil; the caller (internal/tablecache) must attach the
// grammar the table was built for before use.
func (t *Table) UnmarshalBinary(data []byte) error {
	var read int
	var err error

	if t.initial, read, err = decBinaryInt(data); err != nil {
		return fmt.Errorf("table initial state: %w", err)
	}
	data = data[read:]

	var numStates int
	if numStates, read, err = decBinaryInt(data); err != nil {
		return fmt.Errorf("table state count: %w", err)
	}
	data = data[read:]

	t.action = make([]map[int]action, numStates)
	t.goTo = make([]map[int]int, numStates)

	for i := 0; i < numStates; i++ {
		var numActions int
		if numActions, read, err = decBinaryInt(data); err != nil {
			return fmt.Errorf("state %d action count: %w", i, err)
		}
		data = data[read:]

		t.action[i] = make(map[int]action, numActions)
		for j := 0; j < numActions; j++ {
			var sym int
			if sym, read, err = decBinaryInt(data); err != nil {
				return fmt.Errorf("state %d action %d symbol: %w", i, j, err)
			}
			data = data[read:]

			var act action
			if read, err = act.unmarshalBinary(data); err != nil {
				return fmt.Errorf("state %d action %d: %w", i, j, err)
			}
			data = data[read:]

			t.action[i][sym] = act
		}

		var numGotos int
		if numGotos, read, err = decBinaryInt(data); err != nil {
			return fmt.Errorf("state %d goto count: %w", i, err)
		}
		data = data[read:]

		t.goTo[i] = make(map[int]int, numGotos)
		for j := 0; j < numGotos; j++ {
			var sym, target int
			if sym, read, err = decBinaryInt(data); err != nil {
				return fmt.Errorf("state %d goto %d symbol: %w", i, j, err)
			}
			data = data[read:]

			if target, read, err = decBinaryInt(data); err != nil {
				return fmt.Errorf("state %d goto %d target: %w", i, j, err)
			}
			data = data[read:]

			t.goTo[i][sym] = target
		}
	}

	return nil
}

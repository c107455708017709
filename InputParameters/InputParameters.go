package InputParameters

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/spf13/cast"
)

var ErrMissingParameter = errors.New("missing required input parameter")

// ParameterInput holds the input deck as sections ("problem/moving_cloud",
// "hydro", "parthenon/mesh", ...) of named scalar values, obtained from a YAML
// file like:
//
//	problem/moving_cloud:
//	  T_cloud_K: 1.e4
//	hydro:
//	  gamma: 1.6666666667
type ParameterInput struct {
	mu     sync.RWMutex
	Blocks map[string]map[string]interface{}
}

func NewParameterInput() (pin *ParameterInput) {
	pin = &ParameterInput{
		Blocks: make(map[string]map[string]interface{}),
	}
	return
}

func ReadFile(fileName string) (pin *ParameterInput, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	pin = NewParameterInput()
	if err = pin.Parse(data); err != nil {
		return nil, fmt.Errorf("unable to parse input file %s: %w", fileName, err)
	}
	return
}

// Parse merges the sections in data into the deck, later values win.
func (pin *ParameterInput) Parse(data []byte) (err error) {
	var (
		blocks map[string]map[string]interface{}
	)
	if err = yaml.Unmarshal(data, &blocks); err != nil {
		return
	}
	pin.mu.Lock()
	defer pin.mu.Unlock()
	for block, params := range blocks {
		if _, present := pin.Blocks[block]; !present {
			pin.Blocks[block] = make(map[string]interface{})
		}
		for name, val := range params {
			pin.Blocks[block][name] = val
		}
	}
	return
}

func (pin *ParameterInput) Marshal() ([]byte, error) {
	pin.mu.RLock()
	defer pin.mu.RUnlock()
	return yaml.Marshal(pin.Blocks)
}

func (pin *ParameterInput) lookup(block, name string) (val interface{}, ok bool) {
	pin.mu.RLock()
	defer pin.mu.RUnlock()
	var params map[string]interface{}
	if params, ok = pin.Blocks[block]; !ok {
		return
	}
	val, ok = params[name]
	return
}

func (pin *ParameterInput) add(block, name string, val interface{}) {
	pin.mu.Lock()
	defer pin.mu.Unlock()
	if _, present := pin.Blocks[block]; !present {
		pin.Blocks[block] = make(map[string]interface{})
	}
	pin.Blocks[block][name] = val
}

func (pin *ParameterInput) DoesParameterExist(block, name string) (exists bool) {
	_, exists = pin.lookup(block, name)
	return
}

func (pin *ParameterInput) GetReal(block, name string) (r float64, err error) {
	val, ok := pin.lookup(block, name)
	if !ok {
		err = fmt.Errorf("%w: %s/%s", ErrMissingParameter, block, name)
		return
	}
	if r, err = cast.ToFloat64E(val); err != nil {
		err = fmt.Errorf("parameter %s/%s is not a real number: %w", block, name, err)
	}
	return
}

// GetOrAddReal returns the named value, storing def into the deck when the
// parameter is absent so that Print reports what was used.
func (pin *ParameterInput) GetOrAddReal(block, name string, def float64) (r float64, err error) {
	if !pin.DoesParameterExist(block, name) {
		pin.add(block, name, def)
		return def, nil
	}
	return pin.GetReal(block, name)
}

func (pin *ParameterInput) GetInteger(block, name string) (i int, err error) {
	val, ok := pin.lookup(block, name)
	if !ok {
		err = fmt.Errorf("%w: %s/%s", ErrMissingParameter, block, name)
		return
	}
	var r float64
	if r, err = cast.ToFloat64E(val); err != nil {
		err = fmt.Errorf("parameter %s/%s is not an integer: %w", block, name, err)
		return
	}
	if i = int(r); float64(i) != r {
		err = fmt.Errorf("parameter %s/%s is not an integer: %v", block, name, val)
	}
	return
}

func (pin *ParameterInput) GetOrAddInteger(block, name string, def int) (i int, err error) {
	if !pin.DoesParameterExist(block, name) {
		pin.add(block, name, def)
		return def, nil
	}
	return pin.GetInteger(block, name)
}

func (pin *ParameterInput) GetString(block, name string) (s string, err error) {
	val, ok := pin.lookup(block, name)
	if !ok {
		err = fmt.Errorf("%w: %s/%s", ErrMissingParameter, block, name)
		return
	}
	if s, err = cast.ToStringE(val); err != nil {
		err = fmt.Errorf("parameter %s/%s is not a string: %w", block, name, err)
	}
	return
}

func (pin *ParameterInput) GetOrAddString(block, name, def string) (s string, err error) {
	if !pin.DoesParameterExist(block, name) {
		pin.add(block, name, def)
		return def, nil
	}
	return pin.GetString(block, name)
}

func (pin *ParameterInput) GetOrAddBoolean(block, name string, def bool) (b bool, err error) {
	val, ok := pin.lookup(block, name)
	if !ok {
		pin.add(block, name, def)
		return def, nil
	}
	if b, err = cast.ToBoolE(val); err != nil {
		err = fmt.Errorf("parameter %s/%s is not a boolean: %w", block, name, err)
	}
	return
}

func (pin *ParameterInput) SetReal(block, name string, val float64) {
	pin.add(block, name, val)
}

// Set applies an override of the form "section/key=value", where the section
// may itself contain slashes, e.g. "problem/moving_cloud/T_cloud_K=1e4".
func (pin *ParameterInput) Set(assignment string) (err error) {
	var (
		eq    = strings.Index(assignment, "=")
		slash int
	)
	if eq < 0 {
		return fmt.Errorf("override %q is not of the form section/key=value", assignment)
	}
	path, val := strings.TrimSpace(assignment[:eq]), strings.TrimSpace(assignment[eq+1:])
	if slash = strings.LastIndex(path, "/"); slash <= 0 || slash == len(path)-1 {
		return fmt.Errorf("override %q is not of the form section/key=value", assignment)
	}
	pin.add(path[:slash], path[slash+1:], val)
	return
}

func (pin *ParameterInput) Print(w io.Writer) {
	pin.mu.RLock()
	defer pin.mu.RUnlock()
	blocks := make([]string, 0, len(pin.Blocks))
	for block := range pin.Blocks {
		blocks = append(blocks, block)
	}
	sort.Strings(blocks)
	for _, block := range blocks {
		fmt.Fprintf(w, "<%s>\n", block)
		names := make([]string, 0, len(pin.Blocks[block]))
		for name := range pin.Blocks[block] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%-24s = %v\n", name, pin.Blocks[block][name])
		}
	}
}

package driver

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/hydro"
	"github.com/notargets/movingcloud/mesh"
	"github.com/notargets/movingcloud/model_problems/MovingCloud"
	"github.com/notargets/movingcloud/params"
)

var ErrUnknownGenerator = errors.New("unknown problem generator")

// InitUserMeshDataFunc runs once per rank before any block is generated. Only
// the rank with isReporter set may write to w.
type InitUserMeshDataFunc func(pin *InputParameters.ParameterInput, pkg *hydro.Package,
	isReporter bool, w io.Writer) error

// ProblemGeneratorFunc fills one block. It may run concurrently with other
// blocks and must only read pars.
type ProblemGeneratorFunc func(pmb *mesh.MeshBlock, pin *InputParameters.ParameterInput,
	pars params.Reader) error

type Generator struct {
	Name             string
	InitUserMeshData InitUserMeshDataFunc
	ProblemGenerator ProblemGeneratorFunc
}

var Generators = map[string]*Generator{
	"moving_cloud": {
		Name:             "Moving Cloud",
		InitUserMeshData: MovingCloud.InitUserMeshData,
		ProblemGenerator: MovingCloud.ProblemGenerator,
	},
}

func GeneratorNames() (names []string) {
	for name := range Generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func NewGenerator(label string) (g *Generator, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		err = fmt.Errorf("%w: empty name, must be one of %v", ErrUnknownGenerator, GeneratorNames())
		return
	}
	if g, ok = Generators[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("%w: %s, must be one of %v", ErrUnknownGenerator, label, GeneratorNames())
	}
	return
}

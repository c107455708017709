package params

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary(t *testing.T) {
	d := NewDictionary("Hydro")
	{ // Write once
		require.NoError(t, Add(d, "moving_cloud/rho_cloud", 100.))
		require.NoError(t, Add(d, "moving_cloud/center", [3]float64{1, 2, 3}))
		err := Add(d, "moving_cloud/rho_cloud", 50.)
		assert.True(t, errors.Is(err, ErrParamExists))
		v, err := Get[float64](d, "moving_cloud/rho_cloud")
		require.NoError(t, err)
		assert.Equal(t, 100., v)
		c, err := Get[[3]float64](d, "moving_cloud/center")
		require.NoError(t, err)
		assert.Equal(t, [3]float64{1, 2, 3}, c)
	}
	{ // Typed reads
		_, err := Get[int](d, "moving_cloud/rho_cloud")
		assert.True(t, errors.Is(err, ErrParamType))
		_, err = Get[float64](d, "moving_cloud/pressure")
		assert.True(t, errors.Is(err, ErrParamNotFound))
		assert.Equal(t, []string{"moving_cloud/center", "moving_cloud/rho_cloud"}, d.Keys())
	}
	{ // Read only once frozen
		assert.False(t, d.Frozen())
		d.Freeze()
		assert.True(t, d.Frozen())
		err := Add(d, "moving_cloud/pressure", 1.)
		assert.True(t, errors.Is(err, ErrFrozen))
		var (
			r  Reader = d
			wg sync.WaitGroup
		)
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := Get[float64](r, "moving_cloud/rho_cloud")
				assert.NoError(t, err)
				assert.Equal(t, 100., v)
			}()
		}
		wg.Wait()
	}
}

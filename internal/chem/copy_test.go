package chem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateCopyDeep(t *testing.T) {
	t.Parallel()

	src := NewState(testSizes())
	src.WaterDensity = 998.2
	src.Temperature = 25.0
	src.TotalMobile.Set(1, 1.0e-3)
	src.MineralVolumeFraction.Set(3, 0.2)

	dst := src.Copy()
	require.Equal(t, src, dst)

	// Mutating the source must never show through the copy.
	src.TotalMobile.Set(1, 9.9)
	src.WaterDensity = 0
	require.Equal(t, 1.0e-3, dst.TotalMobile.At(1))
	require.Equal(t, 998.2, dst.WaterDensity)
}

func TestPropertiesCopyDeep(t *testing.T) {
	t.Parallel()

	src := NewProperties(testSizes())
	src.Volume = 0.25
	src.IsothermKd.Set(0, 0.5)

	dst := src.Copy()
	require.Equal(t, src, dst)

	src.IsothermKd.Set(0, -1)
	require.Equal(t, 0.5, dst.IsothermKd.At(0))
}

func TestAuxiliaryCopiesDeep(t *testing.T) {
	t.Parallel()

	ad := NewAuxiliaryData(testSizes())
	ad.Ints.Set(2, 42)
	ad.Doubles.Set(0, 3.14)
	adc := ad.Copy()
	require.Equal(t, ad, adc)
	ad.Ints.Set(2, 0)
	require.Equal(t, 42, adc.Ints.At(2))

	ao := NewAuxiliaryOutput(testSizes())
	ao.PH = 7.8
	ao.MineralSaturationIndex.Set(1, -2.5)
	aoc := ao.Copy()
	require.Equal(t, ao, aoc)
	ao.MineralSaturationIndex.Set(1, 0)
	require.Equal(t, -2.5, aoc.MineralSaturationIndex.At(1))
}

func TestProblemMetadataCopyDeep(t *testing.T) {
	t.Parallel()

	md := NewProblemMetadata(testSizes())
	md.PrimaryNames.Set(0, "H+")
	md.PrimaryPositivity.Set(0, 1)

	mdc := md.Copy()
	require.Equal(t, md, mdc)

	md.PrimaryNames.Set(0, "renamed")
	require.Equal(t, "H+", mdc.PrimaryNames.At(0))
}

func TestConditionCopyDeep(t *testing.T) {
	t.Parallel()

	c := NewCondition("seawater", 2, 1)
	c.Aqueous[0] = AqueousConstraint{Species: "Na+", Type: "total", Value: 0.47}
	c.Aqueous[1] = AqueousConstraint{Species: "H+", Type: "pH", Value: 8.1}
	c.Minerals[0] = MineralConstraint{Mineral: "calcite", VolumeFraction: 0.1, SpecificSurfaceArea: 100}

	cc := c.Copy()
	require.Equal(t, c, cc)

	c.Aqueous[0].Value = 0
	c.Minerals[0].Mineral = "dolomite"
	require.Equal(t, 0.47, cc.Aqueous[0].Value)
	require.Equal(t, "calcite", cc.Minerals[0].Mineral)
}

func TestConditionCopyZeroLengthLists(t *testing.T) {
	t.Parallel()

	c := NewCondition("empty", 0, 0)
	cc := c.Copy()
	require.Equal(t, "empty", cc.Name)
	require.Len(t, cc.Aqueous, 0)
	require.Len(t, cc.Minerals, 0)
}

func TestZeroSizedRecordCopy(t *testing.T) {
	t.Parallel()

	var sz Sizes // all-zero counts are populated, just empty
	require.NoError(t, sz.Check())

	st := NewState(sz)
	dst := st.Copy()
	require.Equal(t, st, dst)
	require.Equal(t, 0, dst.TotalMobile.Len())
}

func TestFunctionalityValueCopy(t *testing.T) {
	t.Parallel()

	f := Functionality{OperatorSplitting: true, IndexBase: 0, TemperatureDependent: true}
	g := f
	g.IndexBase = 1
	require.Equal(t, 0, f.IndexBase)
}

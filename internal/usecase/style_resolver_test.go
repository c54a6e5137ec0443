package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/usecase"
)

func TestResolveStyle_EnabledScale(t *testing.T) {
	icon := usecase.AnchorIconFor(domain.CategoryChecked)
	style, err := usecase.ResolveStyle(domain.CategoryChecked, domain.IconScaleSetting{Enabled: true, Exponent: 2}, icon)
	require.NoError(t, err)

	tests := []struct {
		resolution float64
		scale      float64
	}{
		{resolution: 1, scale: 1},
		{resolution: 4, scale: 0.5},
		{resolution: 16, scale: 0.25},
	}

	for _, tt := range tests {
		got, err := style(tt.resolution)
		require.NoError(t, err)
		assert.InDelta(t, tt.scale, got.Scale, 1e-12, "resolution %v", tt.resolution)
		assert.Equal(t, icon, got.Icon)
	}
}

func TestResolveStyle_FlatterCurveForLargerExponent(t *testing.T) {
	icon := usecase.AnchorIconFor(domain.CategoryText)
	steep, err := usecase.ResolveStyle(domain.CategoryText, domain.IconScaleSetting{Enabled: true, Exponent: 1}, icon)
	require.NoError(t, err)
	flat, err := usecase.ResolveStyle(domain.CategoryText, domain.IconScaleSetting{Enabled: true, Exponent: 10}, icon)
	require.NoError(t, err)

	s1, err := steep(100)
	require.NoError(t, err)
	s2, err := flat(100)
	require.NoError(t, err)

	assert.Less(t, s1.Scale, s2.Scale)
	assert.InDelta(t, 0.01, s1.Scale, 1e-12)
}

func TestResolveStyle_DisabledIsConstant(t *testing.T) {
	icon := usecase.AnchorIconFor(domain.CategoryDelete)
	style, err := usecase.ResolveStyle(domain.CategoryDelete, domain.IconScaleSetting{Enabled: false, Exponent: 3.5}, icon)
	require.NoError(t, err)

	for _, r := range []float64{0.1, 1, 2.38, 1000} {
		got, err := style(r)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.Scale)
		assert.Equal(t, domain.BottomCenterAnchor, got.Icon.Anchor)
	}
}

func TestResolveStyle_Errors(t *testing.T) {
	icon := usecase.AnchorIconFor(domain.CategoryText)

	_, err := usecase.ResolveStyle(domain.CategoryText, domain.IconScaleSetting{Enabled: true, Exponent: 0}, icon)
	assert.ErrorIs(t, err, errors.ErrInvalidIconScale)

	_, err = usecase.ResolveStyle(domain.CategoryText, domain.IconScaleSetting{Enabled: true, Exponent: 10.5}, icon)
	assert.ErrorIs(t, err, errors.ErrInvalidIconScale)

	_, err = usecase.ResolveStyle(domain.CategoryUnknown, domain.DefaultIconScaleSetting(), icon)
	assert.ErrorIs(t, err, errors.ErrInvalidCategory)

	style, err := usecase.ResolveStyle(domain.CategoryText, domain.DefaultIconScaleSetting(), icon)
	require.NoError(t, err)
	for _, r := range []float64{0, -1} {
		_, err := style(r)
		assert.ErrorIs(t, err, errors.ErrInvalidResolution)
	}
}

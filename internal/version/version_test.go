package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVersionedCacheKey(t *testing.T) {
	a := GenerateVersionedCacheKey("quote", `{"base_price":10}`)
	b := GenerateVersionedCacheKey("quote", `{"base_price":10}`)
	c := GenerateVersionedCacheKey("quote", `{"base_price":11}`)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "quote:"))
	assert.True(t, strings.HasSuffix(a, ":pv1.0_cv1.0_tv1.0_lv1.0"))
	assert.Len(t, strings.Split(a, ":")[1], 64)
}

func TestVersionBumpChangesKey(t *testing.T) {
	before := GenerateVersionedCacheKey("chat", "hello")
	old := ComponentVersions.Pricing
	ComponentVersions.Pricing = "v2.0"
	defer func() { ComponentVersions.Pricing = old }()

	assert.NotEqual(t, before, GenerateVersionedCacheKey("chat", "hello"))
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

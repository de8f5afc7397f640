package utils

import (
	"github.com/duke-git/lancet/v2/slice"
)

// SliceContains 判断切片是否包含元素
func SliceContains[T comparable](s []T, item T) bool {
	return slice.Contain(s, item)
}

// SliceUnique 切片去重
func SliceUnique[T comparable](s []T) []T {
	return slice.Unique(s)
}

// SliceMap 映射切片
func SliceMap[T any, U any](s []T, fn func(index int, item T) U) []U {
	return slice.Map(s, fn)
}

package utils

import (
	"github.com/duke-git/lancet/v2/strutil"
)

// IsBlank 判断字符串是否为空白
func IsBlank(s string) bool {
	return strutil.IsBlank(s)
}

// Trim 去除字符串两端空白
func Trim(s string) string {
	return strutil.Trim(s)
}

// FirstNonBlank 返回第一个非空白字符串
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if !strutil.IsBlank(v) {
			return strutil.Trim(v)
		}
	}
	return ""
}

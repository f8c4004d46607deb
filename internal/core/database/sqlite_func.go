package database

import (
	"database/sql/driver"
	"strings"
	"sync"

	gosqlite "github.com/glebarez/go-sqlite"
)

// SQLiteLowerFunc sqlite 自带 LOWER 只处理 ASCII，搜索改用这个按 Unicode 规则转小写
const SQLiteLowerFunc = "unicode_lower"

var registerSQLiteFuncs = sync.OnceValue(func() error {
	return gosqlite.RegisterDeterministicScalarFunction(SQLiteLowerFunc, 1, unicodeLower)
})

func unicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil // NULL / 数字原样返回
	}
}

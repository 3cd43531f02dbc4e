package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// 生成后台管理账号的 bcrypt 密码哈希，便于手工插入 users 表。
// 用法: go run hash_gen.go [密码]，不传参数时默认 admin。
func main() {
	password := "admin"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Printf("Hashed Password: %s\n", string(hashedPassword))
	fmt.Println()
	fmt.Printf("INSERT INTO users (username, password_hash, role, created_at, updated_at)\n")
	fmt.Printf("VALUES ('admin', '%s', 'admin', strftime('%%Y-%%m-%%d %%H:%%M:%%S', 'now'), strftime('%%Y-%%m-%%d %%H:%%M:%%S', 'now'));\n", string(hashedPassword))
}

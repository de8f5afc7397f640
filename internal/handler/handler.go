// Package handler HTTP 处理器，只负责解析请求和写响应
package handler

import (
	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/internal/types"

	"github.com/gofiber/fiber/v2"
)

// paramID 解析路径中的正整数 ID
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errorx.BadRequest("Ungültige ID: %s", c.Params(name))
	}
	return uint(id), nil
}

// parseBody 解析 JSON 请求体
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errorx.BadRequest("Ungültige Anfrage")
	}
	return nil
}

// parseQuery 解析查询参数
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return errorx.BadRequest("Ungültige Parameter")
	}
	return nil
}

// sendFile 以附件形式返回生成的文件
func sendFile(c *fiber.Ctx, f *types.FileResult) error {
	c.Attachment(f.FileName)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}

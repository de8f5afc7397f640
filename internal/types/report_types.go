package types

// 下载文件类型
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// FileResult 生成的下载文件
type FileResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

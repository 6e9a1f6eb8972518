package view

// User-facing text.
const (
	msgGalleryLoading = "正在加载照片..."
	msgGalleryEmpty   = "此分类下还没有照片哦。"
	msgGalleryFailed  = "加载照片失败，请稍后重试。"
	msgImageFailed    = "无法加载图片"

	msgAdminLoading = "正在加载图片..."
	msgAdminEmpty   = "没有找到符合条件的图片 (%s)."
	msgAdminFailed  = "加载图片列表失败，请稍后重试。"

	labelVisible = "显示中"
	labelHidden  = "已隐藏"
	buttonHide   = "隐藏"
	buttonShow   = "显示"
	buttonDelete = "删除"

	msgConfirmDelete = "确定要删除这张图片吗？此操作不可恢复。"
	msgDeleteFailed  = "删除失败: "
	msgDeleteError   = "删除过程中发生错误。"
	msgToggleFailed  = "切换状态失败: "
	msgToggleError   = "切换可见性时发生错误。"

	msgUploading = "正在上传，请稍候..."

	UnknownTime = "未知时间"
)

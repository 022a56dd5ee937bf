package structs

type PurchaseRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity"`
}

type UseItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type SetBackgroundRequest struct {
	BackgroundID string `json:"backgroundId" binding:"required"`
}

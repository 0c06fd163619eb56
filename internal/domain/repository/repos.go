package repository

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Inventory   InventoryRepository
	History     InventoryHistoryRepository
	Waste       WasteRepository
	Ingredients IngredientRepository
	Menu        MenuRepository
	Recipes     RecipeRepository
	Records     RecordRepository
}

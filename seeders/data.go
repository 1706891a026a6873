package seeders

var tablesData = []struct {
	Number   int
	Capacity int
}{
	{1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 4}, {6, 6}, {7, 6}, {8, 8},
}

var categoriesData = []struct {
	Name         string
	DisplayOrder int
}{
	{"Starters", 1},
	{"Mains", 2},
	{"Desserts", 3},
	{"Drinks", 4},
}

var menuItemsData = []struct {
	Category     string
	Name         string
	Description  string
	Price        float64
	DisplayOrder int
}{
	// --- Starters ---
	{"Starters", "Garlic Bread", "Toasted sourdough with garlic butter", 5.50, 1},
	{"Starters", "Caesar Salad", "Romaine, parmesan, croutons", 8.00, 2},
	{"Starters", "Tomato Soup", "", 6.50, 3},

	// --- Mains ---
	{"Mains", "Classic Burger", "Beef patty, cheddar, pickles", 13.50, 1},
	{"Mains", "Margherita Pizza", "Tomato, mozzarella, basil", 12.00, 2},
	{"Mains", "Grilled Salmon", "With seasonal vegetables", 18.75, 3},
	{"Mains", "Mushroom Risotto", "", 14.25, 4},

	// --- Desserts ---
	{"Desserts", "Cheesecake", "New York style", 7.00, 1},
	{"Desserts", "Chocolate Brownie", "Served warm", 6.50, 2},

	// --- Drinks ---
	{"Drinks", "Lemonade", "", 3.50, 1},
	{"Drinks", "Espresso", "", 2.75, 2},
	{"Drinks", "Iced Tea", "", 3.25, 3},
}

var modifiersData = []struct {
	Category        string
	Name            string
	PriceAdjustment float64
}{
	{"Size", "Large", 2.00},
	{"Extras", "Extra cheese", 1.50},
	{"Extras", "Bacon", 2.50},
	{"Extras", "Avocado", 2.00},
	{"Removals", "No onions", 0},
	{"Removals", "Gluten free", 0},
	{"Cooking", "Medium rare", 0},
	{"Cooking", "Well done", 0},
}

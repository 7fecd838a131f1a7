package nutrition

// Слоты приёмов пищи.
const (
	SlotBreakfast       = "breakfast"
	SlotMidMorningSnack = "mid_morning_snack"
	SlotLunch           = "lunch"
	SlotEveningSnack    = "evening_snack"
	SlotDinner          = "dinner"
)

// Категории питания, на которые отображается произвольная строка diet_type.
const (
	CategoryVegetarian    = "vegetarian"
	CategoryNonVegetarian = "non-vegetarian"
	CategoryKeto          = "keto"
)

// Slots — порядок слотов в дневном плане.
var Slots = []string{SlotBreakfast, SlotMidMorningSnack, SlotLunch, SlotEveningSnack, SlotDinner}

// Categories — все авторские категории шаблонов.
var Categories = []string{CategoryVegetarian, CategoryNonVegetarian, CategoryKeto}

// mealTemplates — статические таблицы блюд, только для чтения.
// Матрица заполнена полностью: у каждой пары (слот, категория) ровно
// семь записей, поэтому ротация имеет период 7 и вегетарианский фолбэк
// для авторского контента не срабатывает.
var mealTemplates = map[string]map[string][]string{
	SlotBreakfast: {
		CategoryVegetarian: {
			"Spinach & Paneer Paratha",
			"Vegetable Poha with Peanuts",
			"Ragi Dosa with Coconut Chutney",
			"Oats Idli with Sambar",
			"Besan Chilla with Mint Chutney",
			"Upma with Seasonal Vegetables",
			"Methi Thepla with Curd",
		},
		CategoryNonVegetarian: {
			"Egg Bhurji with Whole Wheat Toast",
			"Chicken Keema Paratha",
			"Masala Omelette with Poha",
			"Boiled Eggs with Vegetable Upma",
			"Egg Dosa with Tomato Chutney",
			"Scrambled Eggs with Multigrain Roti",
			"Egg Appam with Vegetable Stew",
		},
		CategoryKeto: {
			"Cheese & Spinach Omelette",
			"Paneer Bhurji with Avocado",
			"Scrambled Eggs with Sauteed Greens",
			"Coconut Flour Pancakes",
			"Masala Egg Muffins",
			"Almond Flour Dosa with Coconut Chutney",
			"Avocado & Egg Bowl",
		},
	},
	SlotMidMorningSnack: {
		CategoryVegetarian: {
			"Seasonal Fruit Bowl",
			"Buttermilk with Roasted Chana",
			"Soaked Almonds & Dates",
			"Coconut Water & Banana",
			"Sprouts Salad with Lemon",
			"Curd with Flaxseed",
			"Peanut & Jaggery Ladoo",
		},
		CategoryNonVegetarian: {
			"Boiled Egg & Fruit Bowl",
			"Chicken Soup with Breadsticks",
			"Buttermilk with Roasted Chana",
			"Egg Salad with Crackers",
			"Coconut Water & Banana",
			"Curd with Flaxseed",
			"Soaked Almonds & Dates",
		},
		CategoryKeto: {
			"Walnuts & Almonds",
			"Cheese Cubes with Olives",
			"Coconut Chunks with Seeds",
			"Boiled Egg with Salt & Pepper",
			"Avocado with Lemon & Salt",
			"Roasted Pumpkin Seeds",
			"Greek Yogurt with Chia",
		},
	},
	SlotLunch: {
		CategoryVegetarian: {
			"Dal Tadka, Jeera Rice & Cucumber Raita",
			"Rajma Curry with Brown Rice",
			"Palak Paneer with Phulka & Salad",
			"Sambar Rice with Beetroot Poriyal",
			"Chole with Roti & Onion Salad",
			"Vegetable Khichdi with Kadhi",
			"Paneer Bhurji with Paratha & Dal",
		},
		CategoryNonVegetarian: {
			"Chicken Curry with Rice & Salad",
			"Fish Curry with Brown Rice",
			"Egg Curry with Phulka & Raita",
			"Grilled Chicken with Dal & Roti",
			"Chicken Biryani with Cucumber Raita",
			"Fish Fry with Sambar Rice",
			"Keema Matar with Paratha",
		},
		CategoryKeto: {
			"Paneer Tikka Salad with Olive Oil",
			"Grilled Chicken with Sauteed Spinach",
			"Cauliflower Rice with Egg Curry",
			"Mushroom & Cheese Lettuce Wraps",
			"Fish Fry with Cabbage Thoran",
			"Soya Chunk Stir-fry with Greens",
			"Zucchini Noodles with Paneer",
		},
	},
	SlotEveningSnack: {
		CategoryVegetarian: {
			"Roasted Makhana with Ghee",
			"Vegetable Cutlet with Green Chutney",
			"Masala Corn Chaat",
			"Dhokla with Mint Chutney",
			"Fruit & Nut Yogurt",
			"Baked Sweet Potato Chaat",
			"Sesame & Jaggery Chikki",
		},
		CategoryNonVegetarian: {
			"Chicken Soup with Toast",
			"Egg Pakora with Mint Chutney",
			"Roasted Makhana with Ghee",
			"Grilled Chicken Tikka Bites",
			"Fruit & Nut Yogurt",
			"Boiled Egg Chaat",
			"Masala Corn Chaat",
		},
		CategoryKeto: {
			"Cheese & Cucumber Sticks",
			"Roasted Makhana with Ghee",
			"Coconut Ladoo with Stevia",
			"Masala Peanuts",
			"Boiled Egg Chaat",
			"Avocado Dip with Vegetable Sticks",
			"Almond Butter with Celery",
		},
	},
	SlotDinner: {
		CategoryVegetarian: {
			"Methi Dal with Phulka & Ghee",
			"Lauki Chana Dal with Rice",
			"Mixed Vegetable Curry with Roti",
			"Paneer Tikka with Dal & Salad",
			"Moong Dal Khichdi with Curd",
			"Baingan Bharta with Phulka",
			"Vegetable Pulao with Boondi Raita",
		},
		CategoryNonVegetarian: {
			"Grilled Fish with Vegetables & Roti",
			"Chicken Stew with Appam",
			"Egg Curry with Jeera Rice",
			"Tandoori Chicken with Dal & Salad",
			"Fish Curry with Phulka",
			"Chicken Soup with Vegetable Khichdi",
			"Pepper Chicken with Rice & Salad",
		},
		CategoryKeto: {
			"Butter Paneer with Cauliflower Rice",
			"Grilled Fish with Buttered Vegetables",
			"Coconut Chicken Curry with Greens",
			"Palak Paneer with Sauteed Mushrooms",
			"Egg Bhurji with Cheese & Salad",
			"Tandoori Chicken with Mint Dip",
			"Vegetable & Cheese Frittata",
		},
	},
}

// Фиксированные списки добавок по этапу материнства.
var (
	supplementsPregnancy  = []string{"Folic Acid", "Iron", "Calcium", "Vitamin D"}
	supplementsPostpartum = []string{"Iron", "Calcium", "Omega-3", "Multivitamin"}
	supplementsDefault    = []string{"Vitamin D", "Calcium", "Multivitamin"}
)

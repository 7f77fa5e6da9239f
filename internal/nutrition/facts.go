// Package nutrition holds a small static food-nutrition knowledge base and a
// keyword retriever that turns user ingredient text into a compact reference
// block for the prompt.
package nutrition

import "github.com/mealweek/mealweek-cli/internal/model"

// facts lists per-100g edible-portion values. Aliases include the Chinese
// names so pasted Chinese ingredient lists still match.
var facts = []model.NutritionFact{
	// grains and starches
	{Name: "rice", Aliases: []string{"white rice", "steamed rice", "米饭", "白米饭"}, Calories: 130, ProteinG: 2.7, FatG: 0.3, CarbsG: 28.2, Note: "cooked"},
	{Name: "brown rice", Aliases: []string{"糙米", "糙米饭"}, Calories: 112, ProteinG: 2.6, FatG: 0.9, CarbsG: 23.5, Note: "cooked"},
	{Name: "oats", Aliases: []string{"oatmeal", "rolled oats", "燕麦", "麦片"}, Calories: 389, ProteinG: 16.9, FatG: 6.9, CarbsG: 66.3},
	{Name: "whole wheat bread", Aliases: []string{"toast", "wholemeal bread", "全麦面包", "吐司"}, Calories: 246, ProteinG: 10.7, FatG: 3.5, CarbsG: 45.8},
	{Name: "noodles", Aliases: []string{"wheat noodles", "面条", "挂面"}, Calories: 284, ProteinG: 9.6, FatG: 0.7, CarbsG: 61.9},
	{Name: "potato", Aliases: []string{"potatoes", "土豆", "马铃薯"}, Calories: 77, ProteinG: 2, FatG: 0.1, CarbsG: 17.5, Note: "cooked"},
	{Name: "sweet potato", Aliases: []string{"红薯", "地瓜"}, Calories: 86, ProteinG: 1.6, FatG: 0.1, CarbsG: 20.1, Note: "cooked"},
	{Name: "corn", Aliases: []string{"sweetcorn", "玉米"}, Calories: 86, ProteinG: 3.3, FatG: 1.2, CarbsG: 19, Note: "cooked"},
	{Name: "steamed bun", Aliases: []string{"mantou", "馒头"}, Calories: 221, ProteinG: 7, FatG: 1.1, CarbsG: 45.7},
	{Name: "baozi", Aliases: []string{"stuffed bun", "包子"}, Calories: 220, ProteinG: 7.2, FatG: 5.5, CarbsG: 35.6},
	// meat, poultry, eggs
	{Name: "chicken breast", Aliases: []string{"chicken", "鸡胸肉", "鸡胸"}, Calories: 133, ProteinG: 31, FatG: 1.2, CarbsG: 0, Note: "cooked"},
	{Name: "chicken thigh", Aliases: []string{"鸡腿", "鸡腿肉"}, Calories: 211, ProteinG: 26, FatG: 11, CarbsG: 0, Note: "cooked, skin on"},
	{Name: "beef brisket", Aliases: []string{"beef", "stewed beef", "牛腩", "牛肉"}, Calories: 250, ProteinG: 26, FatG: 15, CarbsG: 0, Note: "cooked"},
	{Name: "lean pork", Aliases: []string{"pork loin", "猪瘦肉", "里脊"}, Calories: 143, ProteinG: 21, FatG: 6.2, CarbsG: 0, Note: "cooked"},
	{Name: "pork ribs", Aliases: []string{"ribs", "排骨"}, Calories: 278, ProteinG: 18, FatG: 23, CarbsG: 0, Note: "cooked"},
	{Name: "egg", Aliases: []string{"eggs", "boiled egg", "鸡蛋", "水煮蛋"}, Calories: 155, ProteinG: 13, FatG: 11, CarbsG: 1.1, Note: "edible portion"},
	{Name: "sausage", Aliases: []string{"cured sausage", "香肠", "腊肠"}, Calories: 300, ProteinG: 12, FatG: 27, CarbsG: 4, Note: "cooked"},
	// dairy and soy
	{Name: "milk", Aliases: []string{"whole milk", "牛奶", "纯牛奶"}, Calories: 54, ProteinG: 3, FatG: 3.2, CarbsG: 3.4, Note: "whole, per 100ml"},
	{Name: "soy milk", Aliases: []string{"豆浆"}, Calories: 31, ProteinG: 2.9, FatG: 1.6, CarbsG: 1.1, Note: "per 100ml"},
	{Name: "tofu", Aliases: []string{"bean curd", "豆腐"}, Calories: 76, ProteinG: 8.1, FatG: 4.2, CarbsG: 1.9},
	{Name: "dried tofu", Aliases: []string{"豆腐干", "香干"}, Calories: 140, ProteinG: 16.2, FatG: 9.7, CarbsG: 3.6},
	// vegetables
	{Name: "broccoli", Aliases: []string{"西兰花", "西蓝花"}, Calories: 34, ProteinG: 2.8, FatG: 0.4, CarbsG: 7, Note: "cooked"},
	{Name: "spinach", Aliases: []string{"leafy greens", "菠菜", "青菜"}, Calories: 23, ProteinG: 2.9, FatG: 0.4, CarbsG: 3.6, Note: "cooked"},
	{Name: "lettuce", Aliases: []string{"生菜"}, Calories: 15, ProteinG: 1.4, FatG: 0.2, CarbsG: 2.9, Note: "raw"},
	{Name: "cucumber", Aliases: []string{"黄瓜", "青瓜"}, Calories: 15, ProteinG: 0.7, FatG: 0.1, CarbsG: 3.6, Note: "raw"},
	{Name: "tomato", Aliases: []string{"tomatoes", "番茄", "西红柿"}, Calories: 18, ProteinG: 0.9, FatG: 0.2, CarbsG: 3.9, Note: "raw"},
	{Name: "radish", Aliases: []string{"white radish", "daikon", "萝卜", "白萝卜"}, Calories: 20, ProteinG: 0.9, FatG: 0.1, CarbsG: 4.7, Note: "raw"},
	{Name: "carrot", Aliases: []string{"carrots", "胡萝卜"}, Calories: 41, ProteinG: 0.9, FatG: 0.2, CarbsG: 9.6, Note: "raw"},
	{Name: "eggplant", Aliases: []string{"aubergine", "茄子"}, Calories: 25, ProteinG: 1.2, FatG: 0.2, CarbsG: 6, Note: "cooked"},
	{Name: "bell pepper", Aliases: []string{"green pepper", "青椒", "甜椒"}, Calories: 20, ProteinG: 1.1, FatG: 0.2, CarbsG: 4.6, Note: "raw"},
	{Name: "onion", Aliases: []string{"onions", "洋葱"}, Calories: 40, ProteinG: 1.1, FatG: 0.1, CarbsG: 9.4, Note: "raw"},
	{Name: "mung bean", Aliases: []string{"绿豆"}, Calories: 105, ProteinG: 7.4, FatG: 0.5, CarbsG: 19.2, Note: "cooked"},
	// fruit
	{Name: "blueberry", Aliases: []string{"blueberries", "蓝莓"}, Calories: 57, ProteinG: 0.7, FatG: 0.3, CarbsG: 14.5},
	{Name: "apple", Aliases: []string{"apples", "苹果"}, Calories: 52, ProteinG: 0.3, FatG: 0.2, CarbsG: 14},
	{Name: "banana", Aliases: []string{"bananas", "香蕉"}, Calories: 89, ProteinG: 1.1, FatG: 0.3, CarbsG: 22.8},
	{Name: "orange", Aliases: []string{"oranges", "橙子"}, Calories: 47, ProteinG: 0.9, FatG: 0.1, CarbsG: 11.8},
	// fats and other
	{Name: "cooking oil", Aliases: []string{"vegetable oil", "olive oil", "食用油", "植物油"}, Calories: 884, ProteinG: 0, FatG: 100, CarbsG: 0},
	{Name: "nuts", Aliases: []string{"walnut", "almond", "cashew", "坚果", "核桃"}, Calories: 600, ProteinG: 15, FatG: 55, CarbsG: 20, Note: "mixed, approximate"},
	{Name: "salad", Aliases: []string{"green salad", "沙拉"}, Calories: 35, ProteinG: 1.5, FatG: 2, CarbsG: 4, Note: "undressed, approximate"},
}

// baselineNames are always included so the prompt has calibration anchors for
// common staples, proteins and vegetables even when nothing matches.
var baselineNames = map[string]bool{
	"rice":              true,
	"oats":              true,
	"whole wheat bread": true,
	"egg":               true,
	"chicken breast":    true,
	"beef brisket":      true,
	"milk":              true,
	"tofu":              true,
	"potato":            true,
	"broccoli":          true,
	"spinach":           true,
	"tomato":            true,
	"cooking oil":       true,
	"cucumber":          true,
	"radish":            true,
	"pork ribs":         true,
}

// Facts returns the full knowledge base. Callers must not mutate it.
func Facts() []model.NutritionFact {
	return facts
}

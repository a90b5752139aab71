package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.KeyValueStore / core.CatalogStore / core.PurchaseHistoryStore /
// core.ReferenceTables 接口。
//
// 示例：
//   var kv core.KeyValueStore = NewMemoryStore()
//   var catalog core.CatalogStore = NewMemoryCatalog(products)

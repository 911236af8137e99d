// @title           dexview API
// @version         1.0
// @description     Browse the remote creature catalog, open detail records and keep favorites.
// @BasePath        /api/v1
package api

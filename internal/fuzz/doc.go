// Package fuzztests houses Go fuzz harnesses for the GPEx front end and
// pipeline. They guard against panics and hangs on arbitrary input.
//
// Назначение: загрузить байты в FileSet и прогнать их через парсер,
// резолвер, валидатор и генератор.
//
// Не делает: запись файлов, выполнение CLI.
package fuzztests

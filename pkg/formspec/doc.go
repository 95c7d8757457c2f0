// Package formspec loads form specifications from JSON or YAML files and binds
// catalog-backed option lists into them at request time.
//
// A file declares one or more forms:
//
//	forms:
//	  - id: empresa
//	    title: Editar empresa
//	    fields:
//	      - name: nombre
//	        label: Nombre
//	        kind: input
//	        rules:
//	          - {kind: required, message: El nombre es requerido.}
//	          - {kind: minLength, param: 3, message: ...}
//	      - name: region
//	        kind: select
//	        optionsSource: region
//
// Fields with an optionsSource stay empty until Bind resolves them.
package formspec

package store

// Empresa is one row of the empresas table.
type Empresa struct {
	ID                 string `db:"id" json:"id"`
	Rut                string `db:"rut" json:"rut"`
	Nombre             string `db:"nombre" json:"nombre"`
	Industria          string `db:"industria" json:"industria"`
	CiiuID             int64  `db:"ciiu_id" json:"ciiuId"`
	RepresentanteLegal string `db:"representante_legal" json:"representanteLegal"`
	Email              string `db:"email" json:"email"`
	Telefono           string `db:"telefono" json:"telefono"`
	Ubicacion          string `db:"ubicacion" json:"direccion"`
	RegionID           int64  `db:"region_id" json:"regionId"`
	CiudadID           int64  `db:"ciudad_id" json:"ciudadId"`
	Estado             bool   `db:"estado" json:"estado"`
}

// EmpresaDetail is an empresa with its foreign keys expanded to display
// values: region and ciudad names, ciiu code.
type EmpresaDetail struct {
	ID                 string `db:"id" json:"id"`
	Rut                string `db:"rut" json:"rut"`
	Nombre             string `db:"nombre" json:"nombre"`
	Industria          string `db:"industria" json:"industria"`
	Ciiu               string `db:"ciiu" json:"ciiu"`
	RepresentanteLegal string `db:"representante_legal" json:"representanteLegal"`
	Email              string `db:"email" json:"email"`
	Telefono           string `db:"telefono" json:"telefono"`
	Direccion          string `db:"direccion" json:"direccion"`
	Region             string `db:"region" json:"region"`
	Ciudad             string `db:"ciudad" json:"ciudad"`
	Estado             bool   `db:"estado" json:"estado"`
}

// Transportista is one row of the transportistas table.
type Transportista struct {
	ID        string `db:"id" json:"id"`
	Rut       string `db:"rut" json:"rut"`
	Nombre    string `db:"nombre" json:"nombre"`
	Email     string `db:"email" json:"email"`
	Telefono  string `db:"telefono" json:"telefono"`
	Direccion string `db:"direccion" json:"direccion"`
	Patente   string `db:"patente" json:"patente"`
	RegionID  int64  `db:"region_id" json:"regionId"`
	Estado    bool   `db:"estado" json:"estado"`
}

// TransportistaDetail expands region_id to the region name.
type TransportistaDetail struct {
	ID        string `db:"id" json:"id"`
	Rut       string `db:"rut" json:"rut"`
	Nombre    string `db:"nombre" json:"nombre"`
	Email     string `db:"email" json:"email"`
	Telefono  string `db:"telefono" json:"telefono"`
	Direccion string `db:"direccion" json:"direccion"`
	Patente   string `db:"patente" json:"patente"`
	Region    string `db:"region" json:"region"`
	Estado    bool   `db:"estado" json:"estado"`
}

type Region struct {
	ID     int64  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

type Ciudad struct {
	ID       int64  `db:"id" json:"id"`
	Nombre   string `db:"nombre" json:"nombre"`
	RegionID int64  `db:"region_id" json:"regionId"`
}

type Ciiu struct {
	ID          int64  `db:"id" json:"id"`
	Codigo      string `db:"codigo" json:"codigo"`
	Descripcion string `db:"descripcion" json:"descripcion"`
}
